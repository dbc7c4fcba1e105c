package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"campusevents/internal/application"
	"campusevents/internal/domain/feed"
	"campusevents/internal/ports/input"
	"campusevents/internal/ports/output"
	pkgdiscord "campusevents/pkg/discord"
)

// maxEmbeds is Discord's limit per message.
const maxEmbeds = 10

// Handler answers the bot's slash commands from the event use cases.
type Handler struct {
	events  input.EventUseCase
	loc     *time.Location
	tr      output.T
	locale  string
	timeout time.Duration
	log     zerolog.Logger
}

func NewHandler(events input.EventUseCase, loc *time.Location, tr output.T, locale string, log zerolog.Logger) *Handler {
	return &Handler{
		events:  events,
		loc:     loc,
		tr:      tr,
		locale:  locale,
		timeout: 5 * time.Second,
		log:     log,
	}
}

// OnInteraction is registered on the session with AddHandler.
func (h *Handler) OnInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	h.handle(s, i.Interaction)
}

func (h *Handler) handle(r Responder, i *discordgo.Interaction) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	if data.Name != upcomingCommand.Name {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	locale := h.locale
	if i.Locale != "" {
		locale = string(i.Locale)
	}
	search := optionString(data.Options, searchOption)
	resp, err := h.upcoming(ctx, search, locale)
	if err != nil {
		h.log.Error().Err(err).Str("command", data.Name).Msg("discord command failed")
		respondEphemeral(r, i, h.tr.T(locale, "error_repository_failure", nil))
		return
	}
	respond(r, i, resp)
}

// upcoming builds the reply for /upcoming: one embed per upcoming event, in
// feed order, capped at maxEmbeds.
func (h *Handler) upcoming(ctx context.Context, search, locale string) (*discordgo.InteractionResponseData, error) {
	events, err := h.events.Feed(ctx, application.FeedRequest{Mode: feed.ModeStudentUpcoming, Search: search})
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return &discordgo.InteractionResponseData{
			Content: h.tr.T(locale, "discord_no_upcoming", nil),
			Flags:   discordgo.MessageFlagsEphemeral,
		}, nil
	}

	shown := events
	if len(shown) > maxEmbeds {
		shown = shown[:maxEmbeds]
	}
	translate := func(key string, data map[string]any) string { return h.tr.T(locale, key, data) }
	embeds := make([]*discordgo.MessageEmbed, len(shown))
	for idx := range shown {
		embeds[idx] = pkgdiscord.BuildEventEmbed(&shown[idx], h.loc, translate)
	}

	resp := &discordgo.InteractionResponseData{Embeds: embeds, Flags: discordgo.MessageFlagsEphemeral}
	if rest := len(events) - len(shown); rest > 0 {
		resp.Content = h.tr.T(locale, "discord_more_events", map[string]any{"Count": rest})
	}
	return resp, nil
}
