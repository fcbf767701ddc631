package interfaces

import (
	"context"

	"github.com/m-mizutani/herald/pkg/domain/model"
)

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessEvent processes a webhook event
	ProcessEvent(ctx context.Context, event *model.WebhookEvent) error
}

// NotifyUseCase defines the release notification pipeline
type NotifyUseCase interface {
	// NotifyRelease fetches the release, formats it and posts it to the destination
	NotifyRelease(ctx context.Context, repo model.RepositoryRef, tag model.ReleaseTag) error
}
