package salon

import (
	"context"
	"fmt"
	"net/url"

	"salonctl/internal/models"
)

// Slots retrieves the availability windows for one (provider, date) query.
//
// Returns immediately with no network call when either argument is empty.
// The caller applies the same-day lead-time filter; the client returns the
// collection exactly as served.
func (c *Client) Slots(ctx context.Context, cat models.Category, providerID, date string) ([]models.Slot, error) {
	if providerID == "" || date == "" {
		return nil, nil
	}

	caps, err := capabilityFor(cat)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(caps.availabilityPath, url.PathEscape(providerID), url.QueryEscape(date))

	var rows []wireSlot
	if err := c.get(ctx, endpoint, &rows); err != nil {
		return nil, err
	}

	slots := make([]models.Slot, 0, len(rows))
	for _, row := range rows {
		slots = append(slots, row.toModel())
	}
	return slots, nil
}
