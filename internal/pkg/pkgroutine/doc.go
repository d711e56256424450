// Package pkgroutine contains helpers for running goroutines safely.
//
// The Manager type limits concurrency, collects returned errors, and logs
// panics so that long-running work (such as per-session event loops) does not
// crash the process silently.
package pkgroutine
