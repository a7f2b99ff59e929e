package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchProviders Phase = iota
	ScanAvailability
	FetchHistory
)

func (p Phase) String() string {
	switch p {
	case FetchProviders:
		return "fetch_providers"
	case ScanAvailability:
		return "scan_availability"
	case FetchHistory:
		return "fetch_history"
	default:
		return ""
	}
}

func fetchProvidersUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchProviders,
		Step:    step,
		Total:   total,
		Message: "Fetching staff list...",
	}
}

func scanDayUpdate(step, total int, day DayAvailability) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ScanAvailability,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %s: %d slots", step, total, day.Date, day.Provider.DisplayName(), len(day.Slots)),
		Data:    day,
	}
}

func scanFailedUpdate(step, total int, day DayAvailability) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ScanAvailability,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %s: %v", step, total, day.Date, day.Provider.DisplayName(), day.Error),
	}
}

func fetchHistoryUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchHistory,
		Step:    step,
		Total:   total,
		Message: "Fetching appointment history...",
	}
}

func historyFetchedUpdate(step, total, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchHistory,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetched %d appointments", count),
	}
}
