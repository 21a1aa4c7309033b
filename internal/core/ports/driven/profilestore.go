package driven

import (
	"context"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
)

// ProfileStore persists the learner profile across sessions.
// Backed by SQLite; the content index itself is never persisted.
type ProfileStore interface {
	// Load retrieves the stored profile, or domain.ErrNotFound when
	// no profile has been saved yet.
	Load(ctx context.Context) (*domain.LearnerProfile, error)

	// Save stores or replaces the profile.
	Save(ctx context.Context, profile *domain.LearnerProfile) error

	// Close releases resources.
	Close() error
}
