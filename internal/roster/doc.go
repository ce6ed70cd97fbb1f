// Package roster manages the team member list: the admin-approval
// handshake (request code, approval, redistributed sync code), login, and
// direct admin management of accounts.
//
// Every operation that produces a roster re-establishes the bootstrap
// admin invariant: the primary ADMIN record is present exactly once,
// matched by its login key, and cannot be removed.
package roster
