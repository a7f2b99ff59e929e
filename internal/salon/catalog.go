package salon

import (
	"context"

	"salonctl/internal/models"
)

// Offerings retrieves the service list for the given category.
//
// No pagination and no cache: every consumer re-fetches the full collection.
func (c *Client) Offerings(ctx context.Context, cat models.Category) ([]models.Offering, error) {
	caps, err := capabilityFor(cat)
	if err != nil {
		return nil, err
	}

	var rows []wireOffering
	if err := c.get(ctx, caps.offeringsPath, &rows); err != nil {
		return nil, err
	}

	offerings := make([]models.Offering, 0, len(rows))
	for _, row := range rows {
		offerings = append(offerings, row.toModel(cat))
	}
	return offerings, nil
}

// Providers retrieves the staff list for the given category.
func (c *Client) Providers(ctx context.Context, cat models.Category) ([]models.Provider, error) {
	caps, err := capabilityFor(cat)
	if err != nil {
		return nil, err
	}

	var rows []wireProvider
	if err := c.get(ctx, caps.providersPath, &rows); err != nil {
		return nil, err
	}

	providers := make([]models.Provider, 0, len(rows))
	for _, row := range rows {
		providers = append(providers, row.toModel(cat))
	}
	return providers, nil
}
