// Package models defines the domain entities shared by every layer of the
// song-suggestion voting tool.
//
// The package contains three categories of types:
//
// 1. Catalog entities, carried verbatim inside share tokens:
//   - [Song] : a suggested song with its cast ratings
//   - [Rating] : one member's 1-5 star score for a song
//
// 2. Roster entities:
//   - [User] : a team member with plaintext credentials and approval flag
//   - [Role] : ADMIN or USER
//
// 3. The fixed bootstrap admin returned by [PrimaryAdmin], which every
// device's roster must contain exactly once.
//
// JSON field names match the wire format used by the hosted voting page so
// that tokens produced by either side decode on the other.
package models
