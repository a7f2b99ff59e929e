// Package session owns the client-local authentication state.
//
// A [Store] persists the backend-issued session (token, email, role) in the
// local SQLite database so it survives restarts, and exposes it to the HTTP
// layer as an [oauth2.TokenSource]. Authentication is presence-based: having
// a stored token means authenticated, and the backend remains the authority
// on validity.
//
// The store also owns the inactivity timer. Every user interaction calls
// [Store.Touch]; when the timer fires the store logs the client out, clears
// every piece of local state, and notifies the registered expiry callback.
// Logout is best effort on the network side: the backend call may fail, local
// state is cleared regardless.
//
// The reservation flag and the confirmed-appointment snapshot live here too,
// in the single-row booking_state table, because their lifecycle is tied to
// the session (logout and expiry both clear them).
package session
