// Package pkgrouter wraps HTTP routing and common middleware used by the service.
//
// It provides a small router abstraction over httprouter plus shared concerns
// like JSON envelopes, raw file responses, error mapping, logging, recovery,
// and correlation ID propagation.
package pkgrouter
