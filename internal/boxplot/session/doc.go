// Package session keeps one Store and one event loop per browser session.
//
// Sessions share nothing: each has its own store, and the event loop makes
// sure the handlers of a session run one at a time. A session that goes
// without requests for longer than the idle TTL is ended by the sweeper, and
// at the session limit the least recently seen one makes room for a new one.
package session
