package interfaces

import (
	"context"

	"github.com/m-mizutani/herald/pkg/domain/model"
)

// Poster delivers a notification payload to a chat destination
type Poster interface {
	Post(ctx context.Context, payload *model.WebhookPayload) error
}
