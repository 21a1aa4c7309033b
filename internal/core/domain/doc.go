// Package domain contains the core business entities for the tutor CLI.
// It has no dependencies on adapters or infrastructure.
package domain
