// Package catalog implements operations on the shared song list: adding
// and removing suggestions, casting votes, visibility, display ordering,
// and the merge that reconciles a playlist token against local state.
//
// Merge follows a replace-with-union-of-votes rule: the incoming list is
// the admin's authoritative catalog, so its songs and field values win and
// local-only songs drop out, but ratings already cast locally are unioned
// in rather than lost.
package catalog
