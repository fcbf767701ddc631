package usecase_test

import (
	"context"
	"errors"

	"github.com/m-mizutani/herald/pkg/domain/model"
)

type fetchCall struct {
	Repo model.RepositoryRef
	Tag  model.ReleaseTag
}

// mockFetcher is a mock implementation of ReleaseFetcher
type mockFetcher struct {
	getReleaseByTagFunc func(ctx context.Context, repo model.RepositoryRef, tag model.ReleaseTag) (*model.Release, error)
	calls               []fetchCall
}

func (m *mockFetcher) GetReleaseByTag(ctx context.Context, repo model.RepositoryRef, tag model.ReleaseTag) (*model.Release, error) {
	m.calls = append(m.calls, fetchCall{Repo: repo, Tag: tag})
	if m.getReleaseByTagFunc != nil {
		return m.getReleaseByTagFunc(ctx, repo, tag)
	}
	return nil, errors.New("mock not configured")
}

// mockPoster records posted payloads
type mockPoster struct {
	err      error
	payloads []*model.WebhookPayload
}

func (m *mockPoster) Post(ctx context.Context, payload *model.WebhookPayload) error {
	m.payloads = append(m.payloads, payload)
	return m.err
}

type notifyCall struct {
	Repo model.RepositoryRef
	Tag  model.ReleaseTag
}

// mockNotify sends every call to a channel so that asynchronous callers can be awaited
type mockNotify struct {
	calls chan notifyCall
}

func newMockNotify() *mockNotify {
	return &mockNotify{calls: make(chan notifyCall, 4)}
}

func (m *mockNotify) NotifyRelease(ctx context.Context, repo model.RepositoryRef, tag model.ReleaseTag) error {
	m.calls <- notifyCall{Repo: repo, Tag: tag}
	return nil
}
