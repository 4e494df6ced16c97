// Package services carries the error classification shared by the search
// client, the resolver, and the HTTP layer. Errors are tagged with sentinel
// markers at the point of failure so callers can map them to cache TTLs and
// HTTP status codes without string matching.
package services
