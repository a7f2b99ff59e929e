package salon

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"salonctl/internal/models"
	"salonctl/internal/shared"
)

// CreateAppointment submits a composed booking to the backend.
//
// The payload uses the category's own field vocabulary; the server accepts
// both shapes on the same endpoint. The draft is expected to be validated
// already — this call performs no validation of its own.
func (c *Client) CreateAppointment(ctx context.Context, draft models.Draft) error {
	caps, err := capabilityFor(draft.Category)
	if err != nil {
		return err
	}

	payload := map[string]any{
		caps.providerField: draft.ProviderID,
		caps.offeringField: draft.Offering.ID,
		"appointmentTime":  draft.AppointmentTime(),
		caps.labelField:    draft.Offering.Label,
		"email":            draft.Email,
	}

	return c.post(ctx, "/appointment/", payload, nil, shared.ErrSubmit)
}

// CompletedAppointments retrieves the authenticated client's appointment history.
func (c *Client) CompletedAppointments(ctx context.Context) ([]models.Appointment, error) {
	var rows []models.Appointment
	if err := c.get(ctx, "/appointment/completed", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CheckIn confirms presence for today's appointment by client email.
//
// Goes to the dedicated check-in base URL, which may differ from the main API.
func (c *Client) CheckIn(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email", shared.ErrMissingArgument)
	}

	endpoint := fmt.Sprintf("%s/appointment/checkin?email=%s", c.checkinBaseURL, url.QueryEscape(email))
	body := map[string]string{"clientEmail": email}

	return c.doRequest(ctx, http.MethodPost, endpoint, body, nil, shared.ErrSubmit)
}
