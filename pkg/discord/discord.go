package discord

import (
	"context"
	"fmt"
	"time"

	"followup-srv/pkg/redact"
)

const (
	webhookURLFormat  = "https://discord.com/api/webhooks/%s/%s"
	maxDescriptionLen = 4000

	colorInfo    = 0x3498DB
	colorSuccess = 0x2ECC71
	colorWarning = 0xF1C40F
	colorError   = 0xE74C3C
)

func (d *discordImpl) url() string {
	return fmt.Sprintf(webhookURLFormat, d.webhook.ID, d.webhook.Token)
}

func (d *discordImpl) post(ctx context.Context, payload WebhookPayload) error {
	if payload.Username == "" {
		payload.Username = d.config.DefaultUsername
	}
	_, status, err := d.client.Post(ctx, d.url(), payload, nil)
	if err != nil {
		return fmt.Errorf("discord: send webhook: %w", err)
	}
	if status >= 300 {
		return fmt.Errorf("discord: webhook answered status %d", status)
	}
	return nil
}

func (d *discordImpl) SendMessage(ctx context.Context, content string) error {
	return d.post(ctx, WebhookPayload{Content: redact.String(content)})
}

func (d *discordImpl) SendEmbed(ctx context.Context, options MessageOptions) error {
	ts := options.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	desc := redact.String(options.Description)
	if len(desc) > maxDescriptionLen {
		desc = desc[:maxDescriptionLen]
	}
	return d.post(ctx, WebhookPayload{
		Embeds: []Embed{{
			Title:       options.Title,
			Description: desc,
			Color:       colorFor(options.Type),
			Timestamp:   ts.UTC().Format(time.RFC3339),
			Fields:      options.Fields,
		}},
	})
}

func (d *discordImpl) SendError(ctx context.Context, title, description string, err error) error {
	if err != nil {
		description = fmt.Sprintf("%s\n%s", description, redact.Error(err))
	}
	return d.SendEmbed(ctx, MessageOptions{Type: MessageTypeError, Title: title, Description: description})
}

func (d *discordImpl) SendWarning(ctx context.Context, title, description string) error {
	return d.SendEmbed(ctx, MessageOptions{Type: MessageTypeWarning, Title: title, Description: description})
}

func (d *discordImpl) SendInfo(ctx context.Context, title, description string) error {
	return d.SendEmbed(ctx, MessageOptions{Type: MessageTypeInfo, Title: title, Description: description})
}

func (d *discordImpl) Close() error { return nil }

func colorFor(t MessageType) int {
	switch t {
	case MessageTypeSuccess:
		return colorSuccess
	case MessageTypeWarning:
		return colorWarning
	case MessageTypeError:
		return colorError
	default:
		return colorInfo
	}
}
