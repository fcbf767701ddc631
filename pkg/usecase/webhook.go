package usecase

import (
	"context"
	"encoding/json"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/model"
	"github.com/m-mizutani/herald/pkg/utils/async"
)

type webhookUseCase struct {
	notifyUC interfaces.NotifyUseCase
}

// NewWebhook creates a new instance of WebhookUseCase
func NewWebhook(notifyUC interfaces.NotifyUseCase) *webhookUseCase {
	return &webhookUseCase{
		notifyUC: notifyUC,
	}
}

// ProcessEvent processes a webhook event. A published release is notified
// in the background so that the delivery is acknowledged within GitHub's
// response deadline.
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	logger := ctxlog.From(ctx)

	logger.Info("Processing webhook event",
		"id", event.ID,
		"type", event.Type,
		"action", event.Action,
		"repository", event.Repository,
		"sender", event.Sender,
		"received_at", event.ReceivedAt,
		"supported", event.IsSupportedEvent(),
	)

	if !event.IsSupportedEvent() {
		logger.Debug("Ignoring webhook event",
			"type", event.Type,
			"action", event.Action,
		)
		return nil
	}

	var releaseEvent github.ReleaseEvent
	if err := json.Unmarshal(event.RawPayload, &releaseEvent); err != nil {
		return goerr.Wrap(err, "failed to unmarshal release event", goerr.V("delivery_id", event.ID))
	}

	repo := model.RepositoryRef{
		Owner: releaseEvent.GetRepo().GetOwner().GetLogin(),
		Name:  releaseEvent.GetRepo().GetName(),
	}
	tag := model.ReleaseTag(releaseEvent.GetRelease().GetTagName())

	if repo.Owner == "" || repo.Name == "" || tag == "" {
		return goerr.New("missing required fields in release event",
			goerr.V("delivery_id", event.ID),
			goerr.V("owner", repo.Owner),
			goerr.V("repo", repo.Name),
			goerr.V("tag", tag),
		)
	}

	async.Dispatch(ctx, "notify_release", func(ctx context.Context) error {
		return uc.notifyUC.NotifyRelease(ctx, repo, tag)
	})

	return nil
}
