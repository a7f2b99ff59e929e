package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"salonctl/internal/models"
)

// SessionExpiredMsg is pushed into the program when the inactivity timer
// fires. The model falls back to the login view.
type SessionExpiredMsg struct{}

var _ tea.Msg = SessionExpiredMsg{}

// authDoneMsg reports the outcome of a login or registration attempt.
type authDoneMsg struct {
	session *models.Session
	err     error
}

// catalogFetchedMsg reports that the category's staff and services loaded.
type catalogFetchedMsg struct {
	err error
}

// slotsFetchedMsg reports that an availability fetch settled.
type slotsFetchedMsg struct {
	err error
}

// submitDoneMsg reports the outcome of a booking submission.
type submitDoneMsg struct {
	err error
}

// calendarDoneMsg reports the outcome of a calendar export.
type calendarDoneMsg struct {
	notice string
	err    error
}
