package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/model"
)

type notifyUseCase struct {
	fetcher interfaces.ReleaseFetcher
	poster  interfaces.Poster
}

// NewNotify creates a new instance of NotifyUseCase
func NewNotify(fetcher interfaces.ReleaseFetcher, poster interfaces.Poster) interfaces.NotifyUseCase {
	return &notifyUseCase{
		fetcher: fetcher,
		poster:  poster,
	}
}

// NotifyRelease fetches the release for tag, formats it and posts it once
func (uc *notifyUseCase) NotifyRelease(ctx context.Context, repo model.RepositoryRef, tag model.ReleaseTag) error {
	logger := ctxlog.From(ctx)

	logger.Info("Fetching release",
		"repository", repo.String(),
		"tag", tag,
	)

	release, err := uc.fetcher.GetReleaseByTag(ctx, repo, tag)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch release",
			goerr.V("repository", repo.String()),
			goerr.V("tag", tag),
		)
	}

	payload := FormatRelease(release)

	logger.Debug("Formatted release payload",
		"title", release.Name,
		"url", release.HTMLURL,
		"description_length", len([]rune(payload.Embeds[0].Description)),
	)

	if err := uc.poster.Post(ctx, payload); err != nil {
		return goerr.Wrap(err, "failed to post release notification",
			goerr.V("repository", repo.String()),
			goerr.V("tag", tag),
		)
	}

	logger.Info("Release notification sent",
		"repository", repo.String(),
		"tag", tag,
		"title", release.Name,
	)

	return nil
}
