package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"campusevents/internal/domain/entities"
)

const (
	embedColor     = 0x5865F2
	maxDescription = 1024
)

// Translate resolves an announcement label for the embed.
type Translate func(key string, data map[string]any) string

// BuildEventEmbed builds the announcement embed for a newly published event.
func BuildEventEmbed(e *entities.Event, loc *time.Location, t Translate) *discordgo.MessageEmbed {
	when := t("announce_tbd", nil)
	if !e.Schedule.Resolved.IsZero() {
		when = fmt.Sprintf("%s (%s)", FormatEventDateTime(e.Schedule.Resolved, loc), UnixTimestamp(e.Schedule.Resolved))
	}

	fee := t("announce_free", nil)
	if e.RegistrationFee > 0 {
		fee = fmt.Sprintf("%.2f", e.RegistrationFee)
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: t("announce_when", nil), Value: when},
		{Name: t("announce_where", nil), Value: formatPlace(e), Inline: true},
		{Name: t("announce_fee", nil), Value: fee, Inline: true},
	}
	if e.OrganizerName != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: t("announce_organizer", nil), Value: e.OrganizerName})
	}

	embed := &discordgo.MessageEmbed{
		Title:       t("announce_title", map[string]any{"Title": e.Title}),
		Description: truncate(e.Description, maxDescription),
		Color:       embedColor,
		Fields:      fields,
	}
	if e.PosterURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: e.PosterURL}
	}
	if len(e.Tags) > 0 {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "#" + strings.Join(e.Tags, " #")}
	}
	return embed
}

func formatPlace(e *entities.Event) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{e.Venue, e.Campus} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		if e.Type == entities.EventTypeOnline {
			return string(entities.EventTypeOnline)
		}
		return "-"
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
