// Package daemon runs the bindery HTTP service as a single-instance
// background process: a flock lock guards against concurrent daemons and
// the listener is torn down cleanly on context cancellation.
package daemon
