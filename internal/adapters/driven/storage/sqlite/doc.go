// Package sqlite persists the learner profile in a local SQLite
// database so it survives session resets and process restarts. The
// content index itself is deliberately in-memory and never stored.
package sqlite
