package discord

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/internal/domain/entities"
)

func keyOnly(key string, data map[string]any) string {
	if title, ok := data["Title"]; ok {
		return key + ":" + title.(string)
	}
	return key
}

func TestBuildEventEmbed(t *testing.T) {
	at := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	e := &entities.Event{
		Title:           "Robotics Expo",
		Description:     "Robots everywhere.",
		Venue:           "Hall A",
		Campus:          "Main",
		PosterURL:       "https://cdn.example/poster.png",
		Tags:            []string{"ai", "robots"},
		RegistrationFee: 150,
		OrganizerName:   "Robotics Society",
		Schedule:        entities.Schedule{Resolved: at},
	}

	embed := BuildEventEmbed(e, time.UTC, keyOnly)
	assert.Equal(t, "announce_title:Robotics Expo", embed.Title)
	assert.Equal(t, "Robots everywhere.", embed.Description)
	require.Len(t, embed.Fields, 4)
	assert.Equal(t, "Wed 12 Mar 2025, 10:00 (<t:1741773600:F>)", embed.Fields[0].Value)
	assert.Equal(t, "Hall A, Main", embed.Fields[1].Value)
	assert.Equal(t, "150.00", embed.Fields[2].Value)
	assert.Equal(t, "Robotics Society", embed.Fields[3].Value)
	require.NotNil(t, embed.Image)
	assert.Equal(t, "#ai #robots", embed.Footer.Text)
}

func TestBuildEventEmbedUndated(t *testing.T) {
	e := &entities.Event{Title: "Someday", Type: entities.EventTypeOnline, Description: strings.Repeat("x", 2000)}

	embed := BuildEventEmbed(e, nil, keyOnly)
	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "announce_tbd", embed.Fields[0].Value)
	assert.Equal(t, "Online", embed.Fields[1].Value)
	assert.Equal(t, "announce_free", embed.Fields[2].Value)
	assert.Len(t, []rune(embed.Description), maxDescription)
	assert.Nil(t, embed.Image)
	assert.Nil(t, embed.Footer)
}

func TestFormatEventDateTime(t *testing.T) {
	assert.Empty(t, FormatEventDateTime(time.Time{}, time.UTC))
	pkt := time.FixedZone("PKT", 5*60*60)
	assert.Equal(t, "Wed 12 Mar 2025, 15:00",
		FormatEventDateTime(time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC), pkt))
}
