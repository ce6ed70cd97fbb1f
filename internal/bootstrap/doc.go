// Package bootstrap decides how a device initializes its in-memory state
// at startup: from a one-time invite token, from a playlist token merged
// against persisted state, or from persisted state alone.
//
// Precedence is strict and mutually exclusive: invite, then playlist, then
// the plain persisted load. A token that fails to decode produces an error
// notice and falls through to the next branch instead of aborting.
package bootstrap
