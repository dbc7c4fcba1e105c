package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"campusevents/internal/domain/entities"
	"campusevents/internal/ports/output"
	pkgdiscord "campusevents/pkg/discord"
)

var _ output.Announcer = (*Announcer)(nil)

// MessageSender is the part of *discordgo.Session the announcer uses.
type MessageSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Announcer posts an embed for each newly published event to one channel.
type Announcer struct {
	sender    MessageSender
	channelID string
	loc       *time.Location
	tr        output.T
	locale    string
	log       zerolog.Logger
}

func NewAnnouncer(sender MessageSender, channelID string, loc *time.Location, tr output.T, locale string, log zerolog.Logger) *Announcer {
	return &Announcer{
		sender:    sender,
		channelID: channelID,
		loc:       loc,
		tr:        tr,
		locale:    locale,
		log:       log,
	}
}

func (a *Announcer) Announce(ctx context.Context, event *entities.Event) error {
	embed := pkgdiscord.BuildEventEmbed(event, a.loc, func(key string, data map[string]any) string {
		return a.tr.T(a.locale, key, data)
	})
	msg := &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: buildComponents(event),
	}
	sent, err := a.sender.ChannelMessageSendComplex(a.channelID, msg, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("announce event %s: %w", event.ID, err)
	}
	a.log.Info().Str("event_id", event.ID).Str("message_id", sent.ID).Msg("event announced")
	return nil
}

const buttonsPerRow = 2

// buildComponents turns the event's outbound links into link buttons.
func buildComponents(e *entities.Event) []discordgo.MessageComponent {
	var buttons []discordgo.MessageComponent
	if e.RegistrationLink != "" && e.IsRegistrationRequired {
		buttons = append(buttons, discordgo.Button{Label: "Register", Style: discordgo.LinkButton, URL: e.RegistrationLink})
	}
	if e.LocationLink != "" {
		buttons = append(buttons, discordgo.Button{Label: "Location", Style: discordgo.LinkButton, URL: e.LocationLink})
	}
	if e.BrochureLink != "" {
		buttons = append(buttons, discordgo.Button{Label: "Brochure", Style: discordgo.LinkButton, URL: e.BrochureLink})
	}
	var components []discordgo.MessageComponent
	for i := 0; i < len(buttons); i += buttonsPerRow {
		end := min(i+buttonsPerRow, len(buttons))
		components = append(components, discordgo.ActionsRow{Components: buttons[i:end]})
	}
	return components
}
