// Package models defines domain entities for the salon booking client.
//
// The package contains two categories of types:
//
// 1. Backend-owned entities, fetched fresh each run and never mutated locally:
//   - [Offering] : A bookable service (haircut or beauty treatment) with duration and price
//   - [Provider] : A bookable staff member (barber or esthetician)
//   - [Slot] : One availability window for a (provider, date) query
//   - [Appointment] : A completed appointment from the history endpoint
//
// 2. Client-local, transient state:
//   - [Draft] : The not-yet-submitted booking selection, built incrementally
//   - [Confirmed] : Snapshot of a successfully submitted booking, kept only for calendar export
//   - [Session] : The authenticated identity issued by the backend
//
// Draft carries its own validation; every violated rule is reported at once so
// the caller can surface a single combined message.
package models
