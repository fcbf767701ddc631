package console

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/model"
)

// Printer writes payloads to a terminal instead of sending them. Used for dry runs.
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to w
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Post prints the payload as indented JSON
func (p *Printer) Post(ctx context.Context, payload *model.WebhookPayload) error {
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal webhook payload")
	}

	header := color.New(color.FgCyan, color.Bold)
	for _, embed := range payload.Embeds {
		if _, err := header.Fprintf(p.w, "[dry-run] %s\n", embed.Title); err != nil {
			return goerr.Wrap(err, "failed to write payload")
		}
		if _, err := color.New(color.Faint).Fprintf(p.w, "%s\n", embed.URL); err != nil {
			return goerr.Wrap(err, "failed to write payload")
		}
	}

	if _, err := fmt.Fprintln(p.w, string(raw)); err != nil {
		return goerr.Wrap(err, "failed to write payload")
	}
	return nil
}
