package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// DefaultRepository is notified when GITHUB_REPOSITORY is not set
const DefaultRepository = "Kord-Extensions/kord-extensions"

// Release holds the release to announce
type Release struct {
	Tag        string
	Repository string
}

// Flags returns CLI flags for release configuration
func (c *Release) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "tag",
			Usage:       "Release tag to announce (refs/tags/ prefix is accepted)",
			Destination: &c.Tag,
			Sources:     cli.EnvVars("GITHUB_REF"),
		},
		&cli.StringFlag{
			Name:        "repository",
			Usage:       "GitHub repository in owner/name form",
			Value:       DefaultRepository,
			Destination: &c.Repository,
			Sources:     cli.EnvVars("GITHUB_REPOSITORY"),
		},
	}
}

// Validate checks that the release tag is given
func (c *Release) Validate() error {
	if c.Tag == "" {
		return goerr.New("GITHUB_REF is not set", goerr.V("flag", "--tag"))
	}
	return nil
}

// ReleaseTag returns the configured tag without the refs/tags/ prefix
func (c *Release) ReleaseTag() model.ReleaseTag {
	return model.ReleaseTag(c.Tag).Normalize()
}

// RepositoryRef parses the configured repository
func (c *Release) RepositoryRef() (model.RepositoryRef, error) {
	return model.ParseRepositoryRef(c.Repository)
}
