// Package core provides the swimmer roster domain behind the web screens.
//
// The package holds the domain types (swimmers, teams, gender and pool
// course codes), form validation, the roster filter, and the Service that
// the HTTP handlers and the CLI call. It is independent of any transport:
// persistence and object storage are collaborators reached through the
// [Store] and [PhotoStore] interfaces.
//
// # Tenancy
//
// Every read and write is scoped to a tenant id. The web layer resolves the
// tenant from the signed-in user (falling back to the configured default
// tenant) and passes it explicitly; [ContextWithTenant] carries it through
// middleware.
//
// # Roster
//
// [Service.Roster] loads swimmers and teams concurrently. [FilterSwimmers]
// narrows the list by search text, team and gender, and the presentation
// helpers [Age], [FormatBirthDate] and [Initials] format swimmer fields for
// table cells.
//
// # Photos
//
// Photo uploads go through an [UploadLimiter] so a burst of large images
// cannot exhaust the server. Only images up to [MaxPhotoSize] bytes are
// accepted; objects are stored under a tenant prefix with a generated name.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages using [MapError].
// Each category has a code prefix for support reference:
//
//   - SWM001-SWM099: Swimmer errors (not found, validation)
//   - PHOTO001-PHOTO099: Photo upload errors (type, size, busy)
//   - AUTH001-AUTH099: Session errors
//   - DB001-DB099: Database errors
//   - RATE001: Rate limiting
package core
