// Package main hosts the bindery CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the catalog, the cover resolution
// engine, the durable cover cache, and keyword search in terminal form, and
// runs the HTTP service through the serve command. It centralizes
// configuration resolution and logging setup so subcommands can focus on
// user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
