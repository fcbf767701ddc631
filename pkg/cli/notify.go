package cli

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/cli/config"
	"github.com/m-mizutani/herald/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdNotify() *cli.Command {
	var (
		releaseCfg config.Release
		webhookCfg config.Webhook
		githubCfg  config.GitHub
		httpCfg    config.HTTP
	)

	var flags []cli.Flag
	flags = append(flags, releaseCfg.Flags()...)
	flags = append(flags, webhookCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, httpCfg.Flags()...)

	return &cli.Command{
		Name:    "notify",
		Aliases: []string{"n"},
		Usage:   "Post a notification for a published release",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Configuration errors must surface before any request is made
			if err := releaseCfg.Validate(); err != nil {
				return err
			}
			if err := webhookCfg.Validate(); err != nil {
				return err
			}
			repo, err := releaseCfg.RepositoryRef()
			if err != nil {
				return err
			}
			tag := releaseCfg.ReleaseTag()

			logger := ctxlog.From(ctx).With(slog.String("run_id", uuid.NewString()))
			ctx = ctxlog.With(ctx, logger)

			logger.Info("Starting release notification",
				slog.String("repository", repo.String()),
				slog.String("tag", tag.String()),
				slog.Any("webhook_url", webhookCfg.WebhookURL()),
				slog.String("webhook_kind", webhookCfg.Kind),
				slog.Bool("dry_run", webhookCfg.DryRun),
			)

			httpClient := httpCfg.Client()
			fetcher, err := newReleaseFetcher(&githubCfg, httpClient)
			if err != nil {
				return err
			}
			poster, err := newPoster(&webhookCfg, httpClient, c.Root().Writer)
			if err != nil {
				return err
			}

			if err := usecase.NewNotify(fetcher, poster).NotifyRelease(ctx, repo, tag); err != nil {
				return goerr.Wrap(err, "release notification failed")
			}
			return nil
		},
	}
}
