package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/herald/pkg/cli"
	"github.com/m-mizutani/herald/pkg/domain/model"
)

const releaseJSON = `{
  "html_url": "https://x/release/v1.0",
  "tag_name": "v1.0",
  "name": "v1.0",
  "body": "Changes\n* item\n\n",
  "published_at": "2023-01-01T00:00:00Z",
  "author": {"login": "alice", "avatar_url": "https://avatars.example/alice.png", "html_url": "https://github.com/alice"}
}`

type testEnv struct {
	githubHits  atomic.Int32
	webhookHits atomic.Int32
	githubPath  atomic.Value
	payload     atomic.Value

	github  *httptest.Server
	webhook *httptest.Server
}

func setupEnv(t *testing.T, githubStatus, webhookStatus int) *testEnv {
	t.Helper()
	env := &testEnv{}

	env.github = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.githubHits.Add(1)
		env.githubPath.Store(r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(githubStatus)
		if githubStatus == http.StatusOK {
			_, _ = w.Write([]byte(releaseJSON))
		} else {
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		}
	}))
	t.Cleanup(env.github.Close)

	env.webhook = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.webhookHits.Add(1)
		var payload model.WebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err == nil {
			env.payload.Store(payload)
		}
		w.WriteHeader(webhookStatus)
	}))
	t.Cleanup(env.webhook.Close)

	// Isolate from variables set by a CI runner
	for _, key := range []string{
		"GITHUB_REF",
		"GITHUB_REPOSITORY",
		"WEBHOOK_URL",
		"HERALD_DRY_RUN",
		"HERALD_WEBHOOK_KIND",
		"HERALD_SENTRY_DSN",
		"HERALD_LOG_LEVEL",
		"HERALD_LOG_JSON",
		"HERALD_HTTP_TIMEOUT",
	} {
		unsetenv(t, key)
	}
	t.Setenv("HERALD_GITHUB_API_URL", env.github.URL+"/")

	return env
}

// unsetenv removes key for the duration of the test
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	gt.NoError(t, os.Unsetenv(key))
}

func TestRun_Notify(t *testing.T) {
	env := setupEnv(t, http.StatusOK, http.StatusNoContent)
	t.Setenv("GITHUB_REF", "refs/tags/v1.0")
	t.Setenv("GITHUB_REPOSITORY", "owner/repo")
	t.Setenv("WEBHOOK_URL", env.webhook.URL)

	gt.NoError(t, cli.Run(context.Background(), []string{"herald", "notify"}))

	gt.Value(t, env.githubHits.Load()).Equal(int32(1))
	gt.Value(t, env.githubPath.Load()).Equal("/repos/owner/repo/releases/tags/v1.0")
	gt.Value(t, env.webhookHits.Load()).Equal(int32(1))

	payload, ok := env.payload.Load().(model.WebhookPayload)
	gt.True(t, ok)
	gt.Array(t, payload.Embeds).Length(1)
	gt.Value(t, payload.Embeds[0].Title).Equal("v1.0")
	gt.Value(t, payload.Embeds[0].URL).Equal("https://x/release/v1.0")
	gt.Value(t, payload.Embeds[0].Author.Name).Equal("alice")
	gt.Value(t, payload.Embeds[0].Description).Equal("Changes\n**»** item")
	gt.Value(t, payload.Embeds[0].Timestamp).Equal("2023-01-01T00:00:00.000Z")
}

func TestRun_NotifyWithFlags(t *testing.T) {
	env := setupEnv(t, http.StatusOK, http.StatusOK)

	gt.NoError(t, cli.Run(context.Background(), []string{
		"herald", "notify",
		"--tag", "v1.0",
		"--repository", "owner/repo",
		"--webhook-url", env.webhook.URL,
	}))

	gt.Value(t, env.webhookHits.Load()).Equal(int32(1))
}

func TestRun_MissingWebhookURL(t *testing.T) {
	env := setupEnv(t, http.StatusOK, http.StatusOK)
	t.Setenv("GITHUB_REF", "v1.0")

	err := cli.Run(context.Background(), []string{"herald", "notify"})
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("WEBHOOK_URL")

	gt.Value(t, env.githubHits.Load()).Equal(int32(0))
	gt.Value(t, env.webhookHits.Load()).Equal(int32(0))
}

func TestRun_MissingReleaseTag(t *testing.T) {
	env := setupEnv(t, http.StatusOK, http.StatusOK)
	t.Setenv("WEBHOOK_URL", env.webhook.URL)

	err := cli.Run(context.Background(), []string{"herald", "notify"})
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("GITHUB_REF")

	gt.Value(t, env.githubHits.Load()).Equal(int32(0))
	gt.Value(t, env.webhookHits.Load()).Equal(int32(0))
}

func TestRun_ReleaseNotFound(t *testing.T) {
	env := setupEnv(t, http.StatusNotFound, http.StatusOK)
	t.Setenv("GITHUB_REF", "v9.9.9")
	t.Setenv("WEBHOOK_URL", env.webhook.URL)

	err := cli.Run(context.Background(), []string{"herald", "notify"})
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("failed to fetch release")

	gt.Value(t, env.githubHits.Load()).Equal(int32(1))
	gt.Value(t, env.webhookHits.Load()).Equal(int32(0))
}

func TestRun_WebhookRejected(t *testing.T) {
	env := setupEnv(t, http.StatusOK, http.StatusForbidden)
	t.Setenv("GITHUB_REF", "v1.0")
	t.Setenv("WEBHOOK_URL", env.webhook.URL)

	err := cli.Run(context.Background(), []string{"herald", "notify"})
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("failed to post release notification")
	gt.Value(t, env.webhookHits.Load()).Equal(int32(1))
}

func TestRun_DryRun(t *testing.T) {
	env := setupEnv(t, http.StatusOK, http.StatusOK)
	t.Setenv("GITHUB_REF", "v1.0")

	gt.NoError(t, cli.Run(context.Background(), []string{"herald", "notify", "--dry-run"}))

	gt.Value(t, env.githubHits.Load()).Equal(int32(1))
	gt.Value(t, env.webhookHits.Load()).Equal(int32(0))
}

func TestRun_InvalidLogLevel(t *testing.T) {
	env := setupEnv(t, http.StatusOK, http.StatusOK)
	t.Setenv("GITHUB_REF", "v1.0")
	t.Setenv("WEBHOOK_URL", env.webhook.URL)

	err := cli.Run(context.Background(), []string{"herald", "--log-level", "verbose", "notify"})
	gt.Error(t, err)
	gt.Value(t, env.githubHits.Load()).Equal(int32(0))
}

// captureStdout runs fn with os.Stdout redirected and returns what was written
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	gt.NoError(t, err)

	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	fn()
	gt.NoError(t, w.Close())
	return <-done
}

func TestRun_WebhookUnreachableHidesToken(t *testing.T) {
	setupEnv(t, http.StatusOK, http.StatusOK)

	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closed.Close()

	t.Setenv("GITHUB_REF", "v1.0")
	t.Setenv("WEBHOOK_URL", closed.URL+"/api/webhooks/123/very-secret-token")

	var runErr error
	out := captureStdout(t, func() {
		runErr = cli.Run(context.Background(), []string{"herald", "notify"})
	})

	gt.Error(t, runErr)
	gt.String(t, runErr.Error()).Contains("failed to send webhook request")
	gt.String(t, runErr.Error()).NotContains("very-secret-token")
	gt.String(t, out).Contains("CLI execution failed")
	gt.String(t, out).NotContains("very-secret-token")
}
