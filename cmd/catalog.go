package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"salonctl/internal/models"
	"salonctl/internal/shared"
)

// parseCategory maps the --category flag to a [models.Category].
func parseCategory(cmd *cli.Command) (models.Category, error) {
	return categoryFromString(cmd.String("category"))
}

func categoryFromString(name string) (models.Category, error) {
	switch name {
	case "barber", "coiffure":
		return models.Barber, nil
	case "esthetician", "esthetique":
		return models.Esthetician, nil
	default:
		return "", fmt.Errorf("%w: unknown category %q", shared.ErrInvalidArgument, name)
	}
}

// CatalogServices lists the bookable services for a category.
func (r *Runner) CatalogServices(ctx context.Context, cmd *cli.Command) error {
	cat, err := parseCategory(cmd)
	if err != nil {
		return err
	}

	offerings, err := r.client.Offerings(ctx, cat)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(offerings, cmd.Bool("pretty"))
	}

	for _, offering := range offerings {
		if err := r.writePlain("%d\t%s\t%d min\t%d FCFA\n", offering.ID, offering.Label, offering.DurationMinutes, offering.Price); err != nil {
			return err
		}
	}
	return nil
}

// CatalogProviders lists the bookable staff for a category.
func (r *Runner) CatalogProviders(ctx context.Context, cmd *cli.Command) error {
	cat, err := parseCategory(cmd)
	if err != nil {
		return err
	}

	providers, err := r.client.Providers(ctx, cat)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(providers, cmd.Bool("pretty"))
	}

	for _, provider := range providers {
		line := fmt.Sprintf("%s\t%s", provider.ID, provider.DisplayName())
		if provider.Description != "" {
			line = fmt.Sprintf("%s\t%s", line, provider.Description)
		}
		if err := r.writePlain("%s\n", line); err != nil {
			return err
		}
	}
	return nil
}
