// Package store persists device-local state in three independent slots:
// the song catalog, the user roster, and the active session. Each slot is
// a JSON blob in a SQLite table, read once at startup and written through
// on every accepted mutation.
//
// A missing slot is not an error; loads return the zero value so a fresh
// device bootstraps cleanly.
package store
