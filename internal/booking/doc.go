// Package booking implements the appointment booking flow as a headless
// state machine, driven by the terminal UI and by CLI commands.
//
// A [Flow] moves through five states:
//
//	Selecting -> Submitting -> AskCalendar -> CalendarOptions -> NextSteps
//
// Selecting accumulates a [models.Draft] from category, provider, service,
// date and time choices. Changing the date resets the chosen provider, time
// and fetched slots; changing the category resets everything but the email.
// Submission validates the draft locally, posts it, and on success records
// the reservation flag with a confirmed-appointment snapshot before clearing
// the selection, so the flag can never be set for a booking that was not
// accepted.
//
// Availability fetches carry a monotonically increasing sequence number;
// a response that arrives after a newer fetch has started is discarded, so a
// slow reply can never show slots for a stale (provider, date) pair.
//
// Same-day availability hides slots starting within the next 30 minutes.
// The comparison is strict: a slot starting exactly 30 minutes from now is
// excluded.
package booking
