package salon

import "salonctl/internal/models"

// Backend wire types. Field names mirror the backend's JSON exactly,
// including the slot start field the backend spells "starTime". Conversion to
// the neutral domain types in [models] happens at the client boundary.

// wireOffering represents a haircut or beauty service row.
type wireOffering struct {
	ID       int    `json:"id"`
	Type     string `json:"type"`
	Duration int    `json:"duration"`
	Price    int    `json:"price"`
}

func (w wireOffering) toModel(cat models.Category) models.Offering {
	return models.Offering{
		ID:              w.ID,
		Category:        cat,
		Label:           w.Type,
		DurationMinutes: w.Duration,
		Price:           w.Price,
	}
}

// wireProvider represents a barber or esthetician row.
type wireProvider struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"firstname"`
	LastName    string `json:"lastname"`
	Description string `json:"description,omitempty"`
	Phone       int64  `json:"phone"`
}

func (w wireProvider) toModel(cat models.Category) models.Provider {
	return models.Provider{
		ID:          w.ID,
		Category:    cat,
		Email:       w.Email,
		FirstName:   w.FirstName,
		LastName:    w.LastName,
		Description: w.Description,
	}
}

// wireSlot represents one availability window.
type wireSlot struct {
	ID         int    `json:"id"`
	ProviderID string `json:"barberId"`
	FirstName  string `json:"firstname"`
	LastName   string `json:"lastName"`
	StartTime  string `json:"starTime"`
	EndTime    string `json:"endTime"`
	Note       string `json:"note"`
	Available  bool   `json:"available"`
}

func (w wireSlot) toModel() models.Slot {
	return models.Slot{
		ID:         w.ID,
		ProviderID: w.ProviderID,
		StartTime:  w.StartTime,
		EndTime:    w.EndTime,
		Note:       w.Note,
		Available:  w.Available,
	}
}

// authResponse is the backend's reply to login and registration.
type authResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ClientProfile is the authenticated client's profile as served by /me and
// accepted by /client/update.
type ClientProfile struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}
