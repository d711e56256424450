// Package event serializes the handlers of one session.
//
// Each session owns a Loop: a buffered channel drained by exactly one worker,
// so handlers of the same session never overlap and run in the order their
// events were dispatched. Handlers are looked up by name in a Registry shared
// by every session.
package event
