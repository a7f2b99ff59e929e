package models

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Category selects one of the two mutually exclusive booking contexts.
type Category string

const (
	Barber      Category = "barber"
	Esthetician Category = "esthetician"
)

// Offering represents a bookable service with duration and price.
type Offering struct {
	ID              int      `json:"id"`
	Category        Category `json:"category"`
	Label           string   `json:"label"`
	DurationMinutes int      `json:"duration"`
	Price           int      `json:"price"`
}

// Provider represents a bookable staff member.
type Provider struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Email       string   `json:"email"`
	FirstName   string   `json:"firstname"`
	LastName    string   `json:"lastname"`
	Description string   `json:"description,omitempty"`
}

// DisplayName returns "FirstName LastName" for UI and calendar text.
func (p Provider) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Slot represents one availability window for a (provider, date) query.
// Slots are scoped to a single query and never cached across queries.
type Slot struct {
	ID         int    `json:"id"`
	ProviderID string `json:"providerId"`
	StartTime  string `json:"startTime"` // local date-time, "2006-01-02T15:04"
	EndTime    string `json:"endTime"`
	Note       string `json:"note,omitempty"`
	Available  bool   `json:"available"`
}

// Start parses the slot's start time in the given location.
func (s Slot) Start(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02T15:04", s.StartTime, loc)
}

// Clock returns the "HH:MM" portion of the slot's start time.
func (s Slot) Clock() string {
	if i := strings.IndexByte(s.StartTime, 'T'); i >= 0 && len(s.StartTime) >= i+6 {
		return s.StartTime[i+1 : i+6]
	}
	return s.StartTime
}

// Appointment is a completed appointment row from the history endpoint.
type Appointment struct {
	ID                int    `json:"id"`
	Time              string `json:"appointmentTime"`
	ServiceLabel      string `json:"haircutType"`
	Price             int    `json:"price"`
	ProviderFirstName string `json:"barberFirstname"`
	ProviderLastName  string `json:"barberLastname"`
}

// Session is the authenticated identity issued by the backend on login or
// registration. Presence of a token is the only local authentication check;
// validity and expiry are the backend's concern.
type Session struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Draft is the client-local, not-yet-submitted booking selection.
// It is built incrementally from selections and cleared on submit success.
type Draft struct {
	Category   Category
	Date       string // "2006-01-02"
	Time       string // "15:04"
	ProviderID string
	Offering   *Offering
	Email      string
}

// AppointmentTime composes the backend's expected "date T time" value.
func (d Draft) AppointmentTime() string {
	return d.Date + "T" + d.Time
}

// Complete reports whether every selection required for submission is set.
func (d Draft) Complete() bool {
	return d.ProviderID != "" && d.Offering != nil && d.Date != "" && d.Time != ""
}

// Validate checks the composed draft and reports every violated rule in one
// error, messages concatenated with ", ". A nil return means submittable.
func (d Draft) Validate() error {
	var violations []string

	if d.ProviderID == "" {
		if d.Category == Esthetician {
			violations = append(violations, "L'esthéticienne est requise")
		} else {
			violations = append(violations, "Le coiffeur est requis")
		}
	}
	if d.Offering == nil || d.Offering.ID < 1 {
		violations = append(violations, "La prestation est requise")
	}
	if d.Date == "" || d.Time == "" {
		violations = append(violations, "La date et l'heure sont requises")
	}
	if d.Offering == nil || d.Offering.Label == "" {
		violations = append(violations, "Le service est requis")
	}
	if _, err := mail.ParseAddress(d.Email); err != nil {
		violations = append(violations, "Email invalide")
	}

	if len(violations) > 0 {
		return fmt.Errorf("%s", strings.Join(violations, ", "))
	}
	return nil
}

// Confirmed is the client-local snapshot of a successfully submitted booking,
// retained only for calendar export. It carries the resolved display fields so
// export keeps working after the selection state has been cleared.
type Confirmed struct {
	Category        Category `json:"category"`
	ProviderID      string   `json:"providerId"`
	ProviderName    string   `json:"providerName"`
	OfferingID      int      `json:"offeringId"`
	OfferingLabel   string   `json:"offeringLabel"`
	DurationMinutes int      `json:"duration"`
	AppointmentTime string   `json:"appointmentTime"` // "2006-01-02T15:04"
	Email           string   `json:"email"`
}

// Start parses the confirmed appointment's start time in the given location.
func (c Confirmed) Start(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02T15:04", c.AppointmentTime, loc)
}

// End derives the end time from the start and the service duration,
// defaulting to 60 minutes when the duration is unknown.
func (c Confirmed) End(loc *time.Location) (time.Time, error) {
	start, err := c.Start(loc)
	if err != nil {
		return time.Time{}, err
	}
	minutes := c.DurationMinutes
	if minutes <= 0 {
		minutes = 60
	}
	return start.Add(time.Duration(minutes) * time.Minute), nil
}
