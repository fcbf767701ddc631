package config

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

const (
	WebhookKindDiscord = "discord"
	WebhookKindSlack   = "slack"
)

var webhookKinds = []string{WebhookKindDiscord, WebhookKindSlack}

// Webhook holds the notification destination
type Webhook struct {
	URL    string
	Kind   string
	DryRun bool
}

// Flags returns CLI flags for webhook configuration
func (c *Webhook) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "webhook-url",
			Usage:       "Destination webhook URL",
			Destination: &c.URL,
			Sources:     cli.EnvVars("WEBHOOK_URL"),
		},
		&cli.StringFlag{
			Name:        "webhook-kind",
			Usage:       "Destination webhook kind (discord, slack)",
			Value:       WebhookKindDiscord,
			Destination: &c.Kind,
			Sources:     cli.EnvVars("HERALD_WEBHOOK_KIND"),
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Print the payload to stdout instead of posting it",
			Destination: &c.DryRun,
			Sources:     cli.EnvVars("HERALD_DRY_RUN"),
		},
	}
}

// Validate checks that a destination is configured. A dry run needs no URL.
func (c *Webhook) Validate() error {
	if !slices.Contains(webhookKinds, c.Kind) {
		return goerr.New("unsupported webhook kind", goerr.V("kind", c.Kind), goerr.V("supported", webhookKinds))
	}
	if c.URL == "" && !c.DryRun {
		return goerr.New("WEBHOOK_URL is not set", goerr.V("flag", "--webhook-url"))
	}
	return nil
}

// WebhookURL returns the destination as a log-masked value
func (c *Webhook) WebhookURL() types.WebhookURL {
	return types.WebhookURL(c.URL)
}
