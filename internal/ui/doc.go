// Package ui implements an interactive terminal interface using bubbletea's
// Elm architecture.
//
// The TUI provides a multi-view booking workflow:
//  1. [LoginView] : Authenticate (or register) against the backend
//  2. [CategoryView] : Choose between the barber and esthetician contexts
//  3. [ServiceView] : Pick a service from the catalog
//  4. [DateView] : Enter the appointment date
//  5. [ProviderView] : Pick a staff member, triggering an availability fetch
//  6. [TimeView] : Pick one of the remaining slots
//  7. [ConfirmView] : Review and submit the booking
//  8. [AskCalendarView] : Decide whether to export to a calendar
//  9. [CalendarOptionsView] : Google Calendar link or .ics download
//  10. [NextStepsView] : Book again or quit
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View
// pattern. All booking semantics live in [booking.Flow]; the model only maps
// key presses to flow transitions and renders the flow's state. Every key
// press touches the session store so the inactivity timer follows real use,
// and a fired timer pushes a [SessionExpiredMsg] back into the program.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
