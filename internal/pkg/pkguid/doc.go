// Package pkguid provides helpers for generating unique identifiers.
//
// Browser sessions and correlation IDs use UUIDv7 strings; parsed tables are
// stamped with Snowflake numbers so the newest upload always sorts last.
package pkguid
