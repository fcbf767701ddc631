package cli

import (
	"io"
	"net/http"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/cli/config"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/infra/console"
	"github.com/m-mizutani/herald/pkg/infra/discord"
	githubinfra "github.com/m-mizutani/herald/pkg/infra/github"
	slackinfra "github.com/m-mizutani/herald/pkg/infra/slack"
)

func newReleaseFetcher(cfg *config.GitHub, httpClient *http.Client) (interfaces.ReleaseFetcher, error) {
	fetcher, err := githubinfra.NewClient(
		githubinfra.WithBaseURL(cfg.APIURL),
		githubinfra.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub client")
	}
	return fetcher, nil
}

func newPoster(cfg *config.Webhook, httpClient *http.Client, w io.Writer) (interfaces.Poster, error) {
	if cfg.DryRun {
		if w == nil {
			w = os.Stdout
		}
		return console.New(w), nil
	}

	switch cfg.Kind {
	case config.WebhookKindDiscord:
		return discord.NewClient(cfg.WebhookURL(), discord.WithHTTPClient(httpClient)), nil
	case config.WebhookKindSlack:
		return slackinfra.NewClient(cfg.WebhookURL(), slackinfra.WithHTTPClient(httpClient)), nil
	default:
		return nil, goerr.New("unsupported webhook kind", goerr.V("kind", cfg.Kind))
	}
}
