package interfaces

import (
	"context"

	"github.com/m-mizutani/herald/pkg/domain/model"
)

// ReleaseFetcher retrieves release metadata from GitHub
type ReleaseFetcher interface {
	// GetReleaseByTag fetches the release published with the given tag
	GetReleaseByTag(ctx context.Context, repo model.RepositoryRef, tag model.ReleaseTag) (*model.Release, error)
}
