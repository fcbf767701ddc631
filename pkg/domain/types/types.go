package types

// Version is replaced at build time via -ldflags
var Version = "dev"

// ServiceName is reported by the health endpoint and used as the log source
const ServiceName = "herald"

// WebhookURL is a chat webhook endpoint. The URL itself carries the credential
// of the webhook, so values of this type are masked in logs.
type WebhookURL string

// Secret is a shared secret such as the GitHub webhook signing key. Masked in logs.
type Secret string
