// Package cachedb provides the SQLite-backed key-value store the cover
// cache persists into. Payloads are opaque strings; expiry and entry shape
// are owned by the cache layer above.
package cachedb
