package model

// WebhookPayload is the body posted to a chat webhook. It always carries
// exactly one embed for a release notification.
type WebhookPayload struct {
	Embeds []Embed `json:"embeds"`
}

// Embed is a rich content block of a chat message
type Embed struct {
	Color       int         `json:"color"`
	Description string      `json:"description"`
	Timestamp   string      `json:"timestamp"`
	Title       string      `json:"title"`
	URL         string      `json:"url"`
	Author      EmbedAuthor `json:"author"`
}

// EmbedAuthor is shown at the top of an embed
type EmbedAuthor struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	IconURL string `json:"icon_url"`
}
