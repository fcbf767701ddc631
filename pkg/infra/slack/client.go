package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/model"
	"github.com/m-mizutani/herald/pkg/domain/types"
	"github.com/m-mizutani/herald/pkg/utils/redact"
	"github.com/slack-go/slack"
)

// Client posts notifications to a Slack incoming webhook. Each embed is
// rendered as one message attachment.
type Client struct {
	url        types.WebhookURL
	httpClient *http.Client
}

// Option is a functional option for Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used to post messages
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new Slack webhook client
func NewClient(url types.WebhookURL, opts ...Option) *Client {
	c := &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Post converts the payload into a Slack message and sends it
func (c *Client) Post(ctx context.Context, payload *model.WebhookPayload) error {
	msg := ToWebhookMessage(payload)
	if err := slack.PostWebhookCustomHTTPContext(ctx, string(c.url), c.httpClient, msg); err != nil {
		return goerr.Wrap(redact.URLError(err), "failed to post Slack webhook")
	}
	return nil
}

// ToWebhookMessage renders embeds as Slack attachments
func ToWebhookMessage(payload *model.WebhookPayload) *slack.WebhookMessage {
	msg := &slack.WebhookMessage{}
	for _, embed := range payload.Embeds {
		attachment := slack.Attachment{
			Color:      fmt.Sprintf("#%06x", embed.Color),
			AuthorName: embed.Author.Name,
			AuthorLink: embed.Author.URL,
			AuthorIcon: embed.Author.IconURL,
			Title:      embed.Title,
			TitleLink:  embed.URL,
			Text:       embed.Description,
		}
		if ts, err := time.Parse(time.RFC3339, embed.Timestamp); err == nil {
			attachment.Ts = json.Number(strconv.FormatInt(ts.Unix(), 10))
		}
		msg.Attachments = append(msg.Attachments, attachment)
	}
	return msg
}
