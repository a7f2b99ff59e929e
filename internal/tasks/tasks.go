// package tasks implements long-running salon operations.
//
// The core abstraction is BookingEngine, which orchestrates multi-day
// availability scans and appointment-history retrieval. Operations emit
// progress updates via channels for non-blocking status reporting to CLI/UI
// layers.
package tasks

import (
	"context"

	"salonctl/internal/models"
	"salonctl/internal/shared"
)

// API defines the backend surface the engine consumes.
type API interface {
	Providers(ctx context.Context, cat models.Category) ([]models.Provider, error)
	Slots(ctx context.Context, cat models.Category, providerID, date string) ([]models.Slot, error)
	CompletedAppointments(ctx context.Context) ([]models.Appointment, error)
}

// DayAvailability is the scan result for one (provider, date) pair.
type DayAvailability struct {
	Date     string          // "2006-01-02"
	Provider models.Provider // Provider queried
	Slots    []models.Slot   // Slots as served, unfiltered
	Error    error           // Non-nil when the query failed
}

// ScanResult aggregates a full availability scan.
type ScanResult struct {
	Category      models.Category   // Scanned booking context
	From          string            // First date scanned, inclusive
	To            string            // Last date scanned, inclusive
	Days          []DayAvailability // One entry per (provider, date) pair, date-ordered
	TotalSlots    int               // Open slots found across all pairs
	FailedQueries int               // Pairs whose availability fetch failed
}

// HistoryResult contains the appointment history with totals.
type HistoryResult struct {
	Appointments []models.Appointment
	TotalSpent   int // Sum of prices across all rows
}

// Engine defines the salon's long-running operations.
type Engine interface {
	// Scan queries availability for every provider and date in a range,
	// concurrently and rate limited.
	Scan(ctx context.Context, progress chan<- ProgressUpdate, cat models.Category, providerID, from, to string, opts ScanOpts) (*ScanResult, error)

	// History fetches the completed-appointment list.
	History(ctx context.Context, progress chan<- ProgressUpdate) (*HistoryResult, error)
}

// BookingEngine implements Engine against the backend API client.
type BookingEngine struct {
	api API
}

// NewBookingEngine creates a BookingEngine over the given API client.
func NewBookingEngine(api API) *BookingEngine {
	return &BookingEngine{api: api}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *BookingEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// History fetches the completed-appointment history and totals it.
func (e *BookingEngine) History(ctx context.Context, progress chan<- ProgressUpdate) (*HistoryResult, error) {
	if e.api == nil {
		return nil, shared.ErrServiceUnavailable
	}

	e.sendProgress(progress, fetchHistoryUpdate(1, 1))

	rows, err := e.api.CompletedAppointments(ctx)
	if err != nil {
		return nil, err
	}

	result := &HistoryResult{Appointments: rows}
	for _, row := range rows {
		result.TotalSpent += row.Price
	}

	e.sendProgress(progress, historyFetchedUpdate(1, 1, len(rows)))
	return result, nil
}
