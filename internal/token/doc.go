// Package token implements the portable state tokens that stand in for a
// backend: base64-encoded JSON snapshots passed around as URL query
// parameters or pasted codes.
//
// Tokens come in four shapes, matched exhaustively rather than by probing
// optional fields:
//   - [UserGrant] : one user, granting device-local approval
//   - [InviteBundle] : a user plus a song list that replaces the local one
//   - [FullSync] : the whole roster and catalog, imported as an overwrite
//   - [JoinRequest] : a prospective member's profile awaiting approval
//
// A bare song list (the "playlist" link) is encoded and decoded with
// [EncodeSongs] / [DecodeSongs].
//
// Encoding goes through the UTF-8 byte representation before base64 so
// titles and names in any script survive the round trip.
package token
