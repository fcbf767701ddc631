package config

import (
	"net/http"
	"time"

	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API configuration
type GitHub struct {
	APIURL string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub REST API base URL",
			Value:       "https://api.github.com/",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("HERALD_GITHUB_API_URL"),
		},
	}
}

// HTTP holds outbound HTTP client configuration
type HTTP struct {
	Timeout time.Duration
}

// Flags returns CLI flags for HTTP client configuration
func (c *HTTP) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "http-timeout",
			Usage:       "Timeout of each outbound HTTP request",
			Value:       30 * time.Second,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("HERALD_HTTP_TIMEOUT"),
		},
	}
}

// Client returns an HTTP client applying the configured timeout
func (c *HTTP) Client() *http.Client {
	return &http.Client{Timeout: c.Timeout}
}
