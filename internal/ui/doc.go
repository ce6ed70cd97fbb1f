// Package ui implements the interactive terminal voting view.
//
// The TUI shows the songs visible to the signed-in user as a navigable
// list; pressing 1-5 casts a star vote on the highlighted song and the
// list re-sorts immediately. Admins additionally toggle song visibility
// and open an add-song form that prefills title and artist from the URL
// once typing pauses. State changes go through a callback so persistence
// stays with the caller.
package ui
