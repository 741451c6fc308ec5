// Package pipeline defines the configuration value object for the search
// pipeline running on the daemon side. The client never executes the pipeline
// itself; it only renders the configuration into the option string carried by
// the request line, and applies the reporting/inclusion thresholds to decoded
// results.
//
// The option set is closed: every recognized key is enumerated in this
// package with a documented default, and Set rejects anything else at
// configuration time rather than letting the server fail the request later.
package pipeline
