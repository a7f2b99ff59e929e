package salon

import (
	"fmt"

	"salonctl/internal/models"
)

// capability resolves the per-category endpoint paths and payload field names.
// The backend exposes the two booking contexts as parallel endpoint sets with
// distinct JSON vocabularies; everything else about the flow is identical.
type capability struct {
	providersPath    string
	offeringsPath    string
	availabilityPath string // format with provider id and date
	providerField    string
	offeringField    string
	labelField       string
}

var capabilities = map[models.Category]capability{
	models.Barber: {
		providersPath:    "/barber/available",
		offeringsPath:    "/haircut/all",
		availabilityPath: "/availability/barber/%s/slot?date=%s",
		providerField:    "barberId",
		offeringField:    "haircutId",
		labelField:       "haircutType",
	},
	models.Esthetician: {
		providersPath:    "/esthetician/all",
		offeringsPath:    "/esthetic/all",
		availabilityPath: "/availability/esthetician/%s/slot?date=%s",
		providerField:    "estheticianId",
		offeringField:    "estheticId",
		labelField:       "estheticType",
	},
}

func capabilityFor(cat models.Category) (capability, error) {
	caps, ok := capabilities[cat]
	if !ok {
		return capability{}, fmt.Errorf("unknown category %q", cat)
	}
	return caps, nil
}
