// Package salon implements the HTTP client layer for the salon backend API.
//
// # Client
//
// [Client] wraps a base URL, an [http.Client] and an optional
// [oauth2.TokenSource]; every request that has a token available carries it as
// a bearer header, requests without one omit the header entirely. All calls go
// through a single doRequest helper that maps non-2xx and non-JSON responses
// to the shared error taxonomy ([shared.ErrFetch] for reads,
// [shared.ErrSubmit] for writes, [shared.ErrAuth] for the auth endpoints).
//
// # Categories
//
// The backend exposes two parallel sets of endpoints for the salon's two
// booking contexts (barbers/haircuts and estheticians/beauty treatments).
// Rather than duplicating each call per context, every operation is
// parameterized over [models.Category] and resolves its paths and payload
// field names through the capability table in category.go.
//
// # Endpoint Groups
//
//   - Catalog: [Client.Providers], [Client.Offerings]
//   - Availability: [Client.Slots]
//   - Appointments: [Client.CreateAppointment], [Client.CompletedAppointments], [Client.CheckIn]
//   - Auth: [Client.Login], [Client.Register], [Client.Logout], [Client.ForgotPassword], [Client.ResetPassword], [Client.ChangePassword]
//   - Profile: [Client.Me], [Client.UpdateClient]
//
// No call retries and nothing is cached; every consumer re-fetches. Check-in
// goes to its own base URL because the salon runs the kiosk endpoint on a
// separate deployment.
package salon
