package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/model"
)

// DefaultBaseURL is the public GitHub REST API endpoint
const DefaultBaseURL = "https://api.github.com/"

type config struct {
	httpClient *http.Client
	baseURL    string
}

// Option is a functional option for the client
type Option func(*config)

// WithHTTPClient replaces the HTTP client used for API requests
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *config) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets the REST API endpoint, e.g. for GitHub Enterprise Server
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

type client struct {
	githubClient *github.Client
}

// NewClient creates a new unauthenticated GitHub client
func NewClient(opts ...Option) (interfaces.ReleaseFetcher, error) {
	cfg := &config{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// go-github resolves request paths against BaseURL, so it must end with a slash
	baseURL := cfg.baseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse GitHub API URL", goerr.V("url", cfg.baseURL))
	}

	githubClient := github.NewClient(cfg.httpClient)
	githubClient.BaseURL = u

	return &client{
		githubClient: githubClient,
	}, nil
}

// GetReleaseByTag fetches a release by its tag name
func (c *client) GetReleaseByTag(ctx context.Context, repo model.RepositoryRef, tag model.ReleaseTag) (*model.Release, error) {
	release, resp, err := c.githubClient.Repositories.GetReleaseByTag(ctx, repo.Owner, repo.Name, tag.String())
	if err != nil {
		opts := []goerr.Option{
			goerr.V("repository", repo.String()),
			goerr.V("tag", tag),
		}
		if resp != nil {
			opts = append(opts, goerr.V("status_code", resp.StatusCode))
		}
		return nil, goerr.Wrap(err, "failed to get release by tag", opts...)
	}

	result := &model.Release{
		HTMLURL: release.GetHTMLURL(),
		Name:    release.GetName(),
		Body:    release.GetBody(),
		Author: model.ReleaseAuthor{
			Login:     release.GetAuthor().GetLogin(),
			AvatarURL: release.GetAuthor().GetAvatarURL(),
			HTMLURL:   release.GetAuthor().GetHTMLURL(),
		},
	}

	// GitHub shows the tag when a release has no title
	if result.Name == "" {
		result.Name = release.GetTagName()
	}

	if release.PublishedAt != nil {
		result.PublishedAt = release.GetPublishedAt().UTC().Format(time.RFC3339)
	}

	if err := result.Validate(); err != nil {
		return nil, goerr.Wrap(err, "unexpected release response",
			goerr.V("repository", repo.String()),
			goerr.V("tag", tag),
		)
	}

	return result, nil
}
