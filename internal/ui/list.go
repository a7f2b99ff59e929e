package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"salonctl/internal/models"
)

var (
	_ list.Item = categoryItem{}
	_ list.Item = offeringItem{}
	_ list.Item = providerItem{}
	_ list.Item = slotItem{}
)

// categoryItem wraps [models.Category] to implement [list.Item].
type categoryItem struct {
	category models.Category
}

func (i categoryItem) FilterValue() string { return string(i.category) }
func (i categoryItem) Title() string {
	if i.category == models.Esthetician {
		return "Esthétique"
	}
	return "Coiffure"
}
func (i categoryItem) Description() string {
	if i.category == models.Esthetician {
		return "Soins beauté avec une esthéticienne"
	}
	return "Coupe et barbe avec un coiffeur"
}

// offeringItem wraps [models.Offering] to implement [list.Item].
type offeringItem struct {
	offering models.Offering
}

func (i offeringItem) FilterValue() string { return i.offering.Label }
func (i offeringItem) Title() string       { return i.offering.Label }
func (i offeringItem) Description() string {
	return fmt.Sprintf("%d min • %d FCFA", i.offering.DurationMinutes, i.offering.Price)
}

// providerItem wraps [models.Provider] to implement [list.Item].
type providerItem struct {
	provider models.Provider
}

func (i providerItem) FilterValue() string { return i.provider.DisplayName() }
func (i providerItem) Title() string       { return i.provider.DisplayName() }
func (i providerItem) Description() string {
	if i.provider.Description != "" {
		return i.provider.Description
	}
	if i.provider.Category == models.Esthetician {
		return "Esthéticienne"
	}
	return "Coiffeur"
}

// slotItem wraps [models.Slot] to implement [list.Item].
type slotItem struct {
	slot models.Slot
}

func (i slotItem) FilterValue() string { return i.slot.Clock() }
func (i slotItem) Title() string       { return i.slot.Clock() }
func (i slotItem) Description() string {
	if i.slot.Note != "" {
		return i.slot.Note
	}
	return "Disponible"
}
