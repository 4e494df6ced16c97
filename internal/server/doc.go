// Package server exposes the catalog and the cover engine over HTTP for the
// department front end: filtered catalog listings with cached cover state,
// a batch resolution endpoint, and a keyword search passthrough.
package server
