package usecase

import (
	"strings"

	"github.com/m-mizutani/herald/pkg/domain/model"
)

const (
	// EmbedColor is used for every release embed
	EmbedColor = 7506394

	// MaxDescriptionLength is the embed description limit of the destination platform
	MaxDescriptionLength = 2000

	ellipsis       = "..."
	markdownBullet = "\n* "
	bulletGlyph    = "\n**»** "
)

// FormatRelease builds the webhook payload announcing release
func FormatRelease(release *model.Release) *model.WebhookPayload {
	return &model.WebhookPayload{
		Embeds: []model.Embed{
			{
				Color:       EmbedColor,
				Description: formatDescription(release.Body),
				Timestamp:   normalizeTimestamp(release.PublishedAt),
				Title:       release.Name,
				URL:         release.HTMLURL,
				Author: model.EmbedAuthor{
					Name:    release.Author.Login,
					URL:     release.Author.HTMLURL,
					IconURL: release.Author.AvatarURL,
				},
			},
		},
	}
}

func formatDescription(body string) string {
	desc := strings.TrimRight(body, "\n ")
	desc = strings.ReplaceAll(desc, markdownBullet, bulletGlyph)
	desc = strings.TrimSpace(desc)

	// Counted in runes so a multibyte glyph is never cut in half
	runes := []rune(desc)
	if len(runes) > MaxDescriptionLength {
		desc = string(runes[:MaxDescriptionLength-len(ellipsis)]) + ellipsis
	}

	return desc
}

// normalizeTimestamp converts second precision UTC ("...Z") into millisecond
// precision ("....000Z"). Timestamps with a fraction or an offset are kept.
func normalizeTimestamp(ts string) string {
	base, ok := strings.CutSuffix(ts, "Z")
	if !ok || strings.Contains(base, ".") {
		return ts
	}
	return base + ".000Z"
}
