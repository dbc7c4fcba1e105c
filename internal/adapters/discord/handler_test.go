package discord

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/internal/application"
	"campusevents/internal/domain"
	"campusevents/internal/domain/entities"
	"campusevents/internal/ports/input"
)

type stubEvents struct {
	input.EventUseCase
	events []entities.Event
	err    error
	got    application.FeedRequest
}

func (s *stubEvents) Feed(_ context.Context, req application.FeedRequest) ([]entities.Event, error) {
	s.got = req
	return s.events, s.err
}

type fakeResponder struct {
	resp *discordgo.InteractionResponse
}

func (f *fakeResponder) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.resp = resp
	return nil
}

func commandInteraction(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {
	return &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: name, Options: opts},
	}
}

func TestUpcomingCommand(t *testing.T) {
	many := make([]entities.Event, 12)
	for i := range many {
		many[i] = entities.Event{ID: fmt.Sprintf("e%d", i), Title: fmt.Sprintf("Event %d", i)}
	}

	tests := []struct {
		name       string
		events     []entities.Event
		err        error
		wantEmbeds int
		wantText   string
	}{
		{name: "no events", wantText: "discord_no_upcoming"},
		{name: "a few events", events: many[:3], wantEmbeds: 3},
		{name: "capped at ten", events: many, wantEmbeds: maxEmbeds, wantText: "discord_more_events"},
		{name: "store failure", err: domain.Repository("list events", errors.New("down")), wantText: "error_repository_failure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := &stubEvents{events: tt.events, err: tt.err}
			h := NewHandler(events, time.UTC, echoT{}, "en", zerolog.Nop())
			r := &fakeResponder{}

			h.handle(r, commandInteraction("upcoming", &discordgo.ApplicationCommandInteractionDataOption{
				Name:  searchOption,
				Type:  discordgo.ApplicationCommandOptionString,
				Value: "robot",
			}))

			require.NotNil(t, r.resp)
			assert.Equal(t, "robot", events.got.Search)
			assert.Len(t, r.resp.Data.Embeds, tt.wantEmbeds)
			assert.Equal(t, tt.wantText, r.resp.Data.Content)
			assert.Equal(t, discordgo.MessageFlagsEphemeral, r.resp.Data.Flags)
		})
	}
}

func TestHandlerIgnoresOtherInteractions(t *testing.T) {
	h := NewHandler(&stubEvents{}, time.UTC, echoT{}, "en", zerolog.Nop())
	r := &fakeResponder{}

	h.handle(r, commandInteraction("other"))
	assert.Nil(t, r.resp)

	h.handle(r, &discordgo.Interaction{Type: discordgo.InteractionMessageComponent, Data: discordgo.MessageComponentInteractionData{CustomID: "x"}})
	assert.Nil(t, r.resp)
}
