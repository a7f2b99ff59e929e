package booking

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"salonctl/internal/models"
	"salonctl/internal/shared"
)

// State enumerates the positions of the booking flow.
type State int

const (
	StateSelecting State = iota
	StateSubmitting
	StateAskCalendar
	StateCalendarOptions
	StateNextSteps
)

func (s State) String() string {
	switch s {
	case StateSelecting:
		return "selecting"
	case StateSubmitting:
		return "submitting"
	case StateAskCalendar:
		return "ask_calendar"
	case StateCalendarOptions:
		return "calendar_options"
	case StateNextSteps:
		return "next_steps"
	default:
		return "unknown"
	}
}

// LeadTime is the minimum notice required for a same-day booking.
const LeadTime = 30 * time.Minute

// API is the slice of the backend client the flow consumes.
type API interface {
	Providers(ctx context.Context, cat models.Category) ([]models.Provider, error)
	Offerings(ctx context.Context, cat models.Category) ([]models.Offering, error)
	Slots(ctx context.Context, cat models.Category, providerID, date string) ([]models.Slot, error)
	CreateAppointment(ctx context.Context, draft models.Draft) error
}

// Recorder persists the reservation flag and the confirmed snapshot.
// Satisfied by [session.Store].
type Recorder interface {
	SetReservationDone(confirmed models.Confirmed) error
	Reservation() (bool, *models.Confirmed, error)
	ClearReservation() error
}

// Flow is the booking state machine. Safe for use from multiple goroutines;
// the UI drives it from a bubbletea command loop.
type Flow struct {
	api    API
	record Recorder
	logger *log.Logger

	loc *time.Location
	now func() time.Time

	mu        sync.Mutex
	state     State
	draft     models.Draft
	providers []models.Provider
	offerings []models.Offering
	slots     []models.Slot
	warning   string
	confirmed *models.Confirmed

	fetchSeq atomic.Uint64
}

// NewFlow creates a booking flow in the Selecting state for the given
// category context.
func NewFlow(api API, record Recorder, logger *log.Logger) *Flow {
	if logger == nil {
		logger = log.Default()
	}

	return &Flow{
		api:    api,
		record: record,
		logger: logger,
		loc:    time.Local,
		now:    time.Now,
		state:  StateSelecting,
		draft:  models.Draft{Category: models.Barber},
	}
}

// SetLogger swaps the flow's logger.
func (f *Flow) SetLogger(logger *log.Logger) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logger = logger
}

// Resume restores a previously completed booking. When the reservation flag
// is set the flow starts in NextSteps with the stored snapshot, mirroring a
// page reload after a successful booking.
func (f *Flow) Resume() error {
	if f.record == nil {
		return nil
	}
	done, confirmed, err := f.record.Reservation()
	if err != nil {
		return err
	}
	if !done {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateNextSteps
	f.confirmed = confirmed
	return nil
}

// SetEmail records the authenticated client's email on the draft.
func (f *Flow) SetEmail(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Email = email
}

// LoadCatalog switches the flow to the given category and fetches its staff
// and service lists. Every selection except the email is reset.
func (f *Flow) LoadCatalog(ctx context.Context, cat models.Category) error {
	providers, err := f.api.Providers(ctx, cat)
	if err != nil {
		return err
	}
	offerings, err := f.api.Offerings(ctx, cat)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	email := f.draft.Email
	f.draft = models.Draft{Category: cat, Email: email}
	f.providers = providers
	f.offerings = offerings
	f.slots = nil
	f.warning = ""
	return nil
}

// SetDate records the chosen date and resets the provider, time and slot
// selections that depended on the previous one. Past dates are rejected.
func (f *Flow) SetDate(date string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	day, err := time.ParseInLocation("2006-01-02", date, f.loc)
	if err != nil {
		return fmt.Errorf("%w: date invalide, format attendu 2006-01-02", shared.ErrInvalidArgument)
	}
	now := f.now().In(f.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, f.loc)
	if day.Before(today) {
		return fmt.Errorf("%w: la date est déjà passée", shared.ErrInvalidArgument)
	}

	f.draft.Date = date
	f.draft.Time = ""
	f.draft.ProviderID = ""
	f.slots = nil
	f.warning = ""
	return nil
}

// SetOffering selects a service from the loaded catalog.
func (f *Flow) SetOffering(id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.offerings {
		if f.offerings[i].ID == id {
			f.draft.Offering = &f.offerings[i]
			return nil
		}
	}
	return fmt.Errorf("%w: unknown service %d", shared.ErrInvalidArgument, id)
}

// SeedOffering sets the service selection from an already known offering,
// bypassing the catalog lookup. Seeding the same id, label, duration and
// price yields the same draft as picking the entry from the loaded list.
func (f *Flow) SeedOffering(offering models.Offering) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Offering = &offering
}

// SetProvider selects a staff member and, when a date is already chosen,
// refreshes that provider's availability.
func (f *Flow) SetProvider(ctx context.Context, id string) error {
	f.mu.Lock()

	found := false
	for _, p := range f.providers {
		if p.ID == id {
			found = true
			break
		}
	}
	if !found {
		f.mu.Unlock()
		return fmt.Errorf("%w: unknown provider %q", shared.ErrInvalidArgument, id)
	}

	f.draft.ProviderID = id
	f.draft.Time = ""
	f.slots = nil
	date := f.draft.Date
	f.mu.Unlock()

	if date == "" {
		return nil
	}
	return f.RefreshSlots(ctx)
}

// RefreshSlots fetches availability for the current (provider, date) pair.
//
// A no-op when either half of the pair is missing. Responses that lose the
// race against a newer fetch are discarded.
func (f *Flow) RefreshSlots(ctx context.Context) error {
	f.mu.Lock()
	cat, providerID, date := f.draft.Category, f.draft.ProviderID, f.draft.Date
	f.mu.Unlock()

	if providerID == "" || date == "" {
		return nil
	}

	seq := f.fetchSeq.Add(1)

	raw, err := f.api.Slots(ctx, cat, providerID, date)

	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.fetchSeq.Load() {
		f.logger.Debug("discarding stale availability response", "provider", providerID, "date", date)
		return nil
	}

	if err != nil {
		f.slots = nil
		f.warning = "Impossible de charger les disponibilités, essayer une autre date"
		return err
	}

	filtered := f.filterSlots(raw, date)
	f.slots = filtered
	if len(filtered) == 0 {
		f.warning = "Aucun horaire disponible pour cette date. Veuillez choisir une autre date."
	} else {
		f.warning = ""
	}
	return nil
}

// filterSlots applies the same-day lead-time rule. Dates other than today
// pass through untouched. Callers hold f.mu.
func (f *Flow) filterSlots(raw []models.Slot, date string) []models.Slot {
	now := f.now().In(f.loc)
	if date != now.Format("2006-01-02") {
		return raw
	}

	cutoff := now.Add(LeadTime)
	kept := make([]models.Slot, 0, len(raw))
	for _, slot := range raw {
		start, err := slot.Start(f.loc)
		if err != nil {
			continue
		}
		if start.After(cutoff) {
			kept = append(kept, slot)
		}
	}
	return kept
}

// SetTime selects a start time; it must be one of the fetched slots and the
// slot must still be open for booking.
func (f *Flow) SetTime(clock string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, slot := range f.slots {
		if slot.Clock() != clock {
			continue
		}
		if !slot.Available {
			return fmt.Errorf("%w: %q is marked unavailable", shared.ErrInvalidArgument, clock)
		}
		f.draft.Time = clock
		return nil
	}
	return fmt.Errorf("%w: %q is not an available time", shared.ErrInvalidArgument, clock)
}

// Submit validates the draft and posts it to the backend.
//
// Re-entrant calls while a submission is in flight return immediately. On
// failure the flow returns to Selecting with every choice intact; on success
// the reservation is recorded, the selection is cleared and the flow moves to
// AskCalendar.
func (f *Flow) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return nil
	}
	if f.state != StateSelecting {
		f.mu.Unlock()
		return fmt.Errorf("%w: no booking in progress", shared.ErrInvalidArgument)
	}

	draft := f.draft
	if err := draft.Validate(); err != nil {
		f.mu.Unlock()
		return fmt.Errorf("%w: %s", shared.ErrValidation, err)
	}

	f.state = StateSubmitting
	confirmed := f.snapshot(draft)
	f.mu.Unlock()

	if err := f.api.CreateAppointment(ctx, draft); err != nil {
		f.mu.Lock()
		f.state = StateSelecting
		f.mu.Unlock()
		return err
	}

	// Record before clearing the selection so a crash between the two never
	// loses an accepted booking.
	if f.record != nil {
		if err := f.record.SetReservationDone(confirmed); err != nil {
			f.logger.Warn("booking accepted but flag not persisted", "error", err)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.confirmed = &confirmed
	f.draft = models.Draft{Category: draft.Category, Email: draft.Email}
	f.slots = nil
	f.warning = ""
	f.state = StateAskCalendar
	return nil
}

// snapshot resolves the display fields needed for calendar export after the
// selection is cleared. Callers hold f.mu.
func (f *Flow) snapshot(draft models.Draft) models.Confirmed {
	confirmed := models.Confirmed{
		Category:        draft.Category,
		ProviderID:      draft.ProviderID,
		AppointmentTime: draft.AppointmentTime(),
		Email:           draft.Email,
	}

	for _, p := range f.providers {
		if p.ID == draft.ProviderID {
			confirmed.ProviderName = p.DisplayName()
			break
		}
	}
	if draft.Offering != nil {
		confirmed.OfferingID = draft.Offering.ID
		confirmed.OfferingLabel = draft.Offering.Label
		confirmed.DurationMinutes = draft.Offering.DurationMinutes
	}
	return confirmed
}

// AnswerCalendar resolves the "add to calendar?" question.
func (f *Flow) AnswerCalendar(add bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateAskCalendar {
		return
	}
	if add {
		f.state = StateCalendarOptions
	} else {
		f.state = StateNextSteps
	}
}

// CalendarDone advances past the calendar options once an export happened
// (or was abandoned).
func (f *Flow) CalendarDone() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateCalendarOptions {
		f.state = StateNextSteps
	}
}

// StartOver clears the reservation flag and returns to a blank Selecting
// state so another appointment can be booked.
func (f *Flow) StartOver() error {
	if f.record != nil {
		if err := f.record.ClearReservation(); err != nil {
			return err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	email := f.draft.Email
	cat := f.draft.Category
	f.draft = models.Draft{Category: cat, Email: email}
	f.slots = nil
	f.warning = ""
	f.confirmed = nil
	f.state = StateSelecting
	return nil
}

// State returns the current flow state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Draft returns a copy of the selection in progress.
func (f *Flow) Draft() models.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Providers returns the staff list for the active category.
func (f *Flow) Providers() []models.Provider {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.providers
}

// Offerings returns the service list for the active category.
func (f *Flow) Offerings() []models.Offering {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.offerings
}

// Slots returns the filtered availability for the current selection.
func (f *Flow) Slots() []models.Slot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slots
}

// Warning returns the pending availability warning, empty when none.
func (f *Flow) Warning() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.warning
}

// Confirmed returns the snapshot of the last accepted booking, nil before
// any submission succeeded.
func (f *Flow) Confirmed() *models.Confirmed {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.confirmed
}
