package session

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"salonctl/internal/models"
)

// SetReservationDone marks the booking flow as completed and stores the
// confirmed-appointment snapshot for calendar export after a restart.
func (s *Store) SetReservationDone(confirmed models.Confirmed) error {
	snapshot, err := json.Marshal(confirmed)
	if err != nil {
		return fmt.Errorf("failed to encode confirmed appointment: %w", err)
	}

	_, err = s.db.Exec(
		"UPDATE booking_state SET reservation_done = 1, snapshot = ?, updated_at = CURRENT_TIMESTAMP WHERE id = 1",
		string(snapshot),
	)
	if err != nil {
		return fmt.Errorf("failed to set reservation flag: %w", err)
	}
	return nil
}

// Reservation reports whether a completed booking is recorded, returning the
// stored snapshot when it is.
//
// A set flag with a missing or corrupt snapshot still reports done; the
// caller just has no appointment details to export.
func (s *Store) Reservation() (bool, *models.Confirmed, error) {
	var done int
	var snapshot sql.NullString
	err := s.db.QueryRow("SELECT reservation_done, snapshot FROM booking_state WHERE id = 1").
		Scan(&done, &snapshot)
	if err != nil {
		return false, nil, fmt.Errorf("failed to read reservation flag: %w", err)
	}

	if done == 0 {
		return false, nil, nil
	}
	if !snapshot.Valid || snapshot.String == "" {
		return true, nil, nil
	}

	var confirmed models.Confirmed
	if err := json.Unmarshal([]byte(snapshot.String), &confirmed); err != nil {
		return true, nil, nil
	}
	return true, &confirmed, nil
}

// ClearReservation resets the flag and drops the snapshot.
func (s *Store) ClearReservation() error {
	_, err := s.db.Exec(
		"UPDATE booking_state SET reservation_done = 0, snapshot = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = 1",
	)
	if err != nil {
		return fmt.Errorf("failed to clear reservation flag: %w", err)
	}
	return nil
}
