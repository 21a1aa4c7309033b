// Package file provides a TOML file-backed configuration store kept
// under the tutor config directory.
package file
