package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Bot owns the Discord session used for announcements. It only needs
// permission to post in the announcement channel.
type Bot struct {
	session *discordgo.Session
	log     zerolog.Logger
}

// NewBot creates the session for token. Call Open before announcing.
func NewBot(token string, log zerolog.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds
	return &Bot{session: s, log: log}, nil
}

func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	if u := b.session.State.User; u != nil {
		b.log.Info().Str("bot_user", u.Username).Msg("discord session open")
	}
	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// RegisterCommands routes interactions to h and publishes the slash commands
// globally. The session must be open.
func (b *Bot) RegisterCommands(h *Handler) error {
	b.session.AddHandler(h.OnInteraction)

	var appID string
	if u := b.session.State.User; u != nil {
		appID = u.ID
	} else {
		u, err := b.session.User("@me")
		if err != nil {
			return fmt.Errorf("resolve bot user: %w", err)
		}
		appID = u.ID
	}
	cmds, err := b.session.ApplicationCommandBulkOverwrite(appID, "", Commands())
	if err != nil {
		return fmt.Errorf("register discord commands: %w", err)
	}
	b.log.Info().Int("commands", len(cmds)).Msg("discord commands registered")
	return nil
}

// Session exposes the session as a message sender for the announcer.
func (b *Bot) Session() *discordgo.Session {
	return b.session
}
