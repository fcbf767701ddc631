package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

const tagRefPrefix = "refs/tags/"

// ReleaseTag identifies a published release, e.g. "v1.2.3"
type ReleaseTag string

// Normalize strips the "refs/tags/" prefix that GitHub Actions puts in GITHUB_REF.
// A bare tag is returned unchanged.
func (x ReleaseTag) Normalize() ReleaseTag {
	return ReleaseTag(strings.TrimPrefix(string(x), tagRefPrefix))
}

func (x ReleaseTag) String() string {
	return string(x)
}

// RepositoryRef points to a GitHub repository
type RepositoryRef struct {
	Owner string
	Name  string
}

// ParseRepositoryRef parses "owner/name" form
func ParseRepositoryRef(s string) (RepositoryRef, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return RepositoryRef{}, goerr.New("invalid repository, expected owner/name", goerr.V("repository", s))
	}

	return RepositoryRef{Owner: owner, Name: name}, nil
}

func (x RepositoryRef) String() string {
	return x.Owner + "/" + x.Name
}

// Release represents release metadata fetched from GitHub
type Release struct {
	HTMLURL     string
	Name        string
	Body        string
	PublishedAt string // RFC 3339, e.g. 2023-01-01T00:00:00Z
	Author      ReleaseAuthor
}

// ReleaseAuthor is the account that published the release
type ReleaseAuthor struct {
	Login     string
	AvatarURL string
	HTMLURL   string
}

// Validate checks that fields required to build a notification are present
func (x *Release) Validate() error {
	var missing []string
	if x.HTMLURL == "" {
		missing = append(missing, "html_url")
	}
	if x.Name == "" {
		missing = append(missing, "name")
	}
	if x.PublishedAt == "" {
		missing = append(missing, "published_at")
	}
	if x.Author.Login == "" {
		missing = append(missing, "author.login")
	}

	if len(missing) > 0 {
		return goerr.New("release is missing required fields", goerr.V("fields", missing))
	}
	return nil
}
