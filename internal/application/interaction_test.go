package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/internal/domain"
	"campusevents/internal/domain/entities"
)

func TestToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("like then unlike returns to the start", func(t *testing.T) {
		f := newFixture(t)
		e := f.seedEvent(t, "Robot Wars")

		state, err := f.ledger.ToggleLike(ctx, e.ID, "u1")
		require.NoError(t, err)
		assert.Equal(t, LikeState{Liked: true, LikesCount: 1}, state)

		state, err = f.ledger.ToggleLike(ctx, e.ID, "u1")
		require.NoError(t, err)
		assert.Equal(t, LikeState{Liked: false, LikesCount: 0}, state)
		assert.Zero(t, f.db.LikeMarkers(e.ID))
	})

	t.Run("count is re-read from the event", func(t *testing.T) {
		f := newFixture(t)
		e := f.seedEvent(t, "Robot Wars")

		_, err := f.ledger.ToggleLike(ctx, e.ID, "u1")
		require.NoError(t, err)
		state, err := f.ledger.ToggleLike(ctx, e.ID, "u2")
		require.NoError(t, err)
		assert.Equal(t, 2, state.LikesCount)

		stored, err := f.events.FindByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.Counters.Likes)
		assert.Equal(t, 2, f.db.LikeMarkers(e.ID))
	})

	t.Run("counter never goes negative", func(t *testing.T) {
		f := newFixture(t)
		e := f.seedEvent(t, "Robot Wars")
		users := []string{"a", "b", "a", "a", "b", "b", "c", "a"}
		for _, u := range users {
			state, err := f.ledger.ToggleLike(ctx, e.ID, u)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, state.LikesCount, 0)
		}
		stored, err := f.events.FindByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, f.db.LikeMarkers(e.ID), stored.Counters.Likes)
	})

	t.Run("requires a user", func(t *testing.T) {
		f := newFixture(t)
		e := f.seedEvent(t, "Robot Wars")
		_, err := f.ledger.ToggleLike(ctx, e.ID, " ")
		assert.ErrorIs(t, err, domain.ErrAuthRequired)
		assert.Empty(t, f.metrics.kinds)
	})

	t.Run("unknown event", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ledger.ToggleLike(ctx, "missing", "u1")
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
		assert.Equal(t, 1, f.metrics.fails)
	})
}

func TestToggleSave(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	e := f.seedEvent(t, "Hackathon")

	state, err := f.ledger.ToggleSave(ctx, e.ID, "s1")
	require.NoError(t, err)
	assert.True(t, state.Saved)

	saved, err := f.ledger.SavedPosts(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Hackathon", saved[0].Snapshot.EventTitle)
	assert.Equal(t, "Hall A", saved[0].Snapshot.Venue)

	t.Run("snapshot is not refreshed by later edits", func(t *testing.T) {
		_, err := f.eventSvc.UpdateEvent(ctx, manager, e.ID, EventInput{Title: "Hackathon 2.0"})
		require.NoError(t, err)
		saved, err := f.ledger.SavedPosts(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "Hackathon", saved[0].Snapshot.EventTitle)
	})

	status, err := f.ledger.Status(ctx, e.ID, "s1")
	require.NoError(t, err)
	assert.True(t, status.Saved)
	assert.False(t, status.Liked)

	state, err = f.ledger.ToggleSave(ctx, e.ID, "s1")
	require.NoError(t, err)
	assert.False(t, state.Saved)

	saved, err = f.ledger.SavedPosts(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	e := f.seedEvent(t, "Career Fair")

	count, err := f.ledger.Register(ctx, e.ID, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	regs, err := f.ledger.Registrations(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, e.ID, regs[0].Snapshot.EventID)
	assert.Equal(t, "10:00", regs[0].Snapshot.StartTime)
	assert.Equal(t, "Robotics Society", regs[0].Snapshot.OrganizerName)

	// Registering again is not deduplicated.
	count, err = f.ledger.Register(ctx, e.ID, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, f.db.Attendees(e.ID), 2)

	regs, err = f.ledger.Registrations(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, regs, 1)

	_, err = f.ledger.Register(ctx, e.ID, "")
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestPostComment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	e := f.seedEvent(t, "Debate")

	t.Run("blank text is rejected locally", func(t *testing.T) {
		_, err := f.ledger.PostComment(ctx, e.ID, "s1", "  \n\t ")
		assert.ErrorIs(t, err, domain.ErrEmptyComment)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, f.metrics.kinds)
	})

	first, err := f.ledger.PostComment(ctx, e.ID, "s1", "  first!  ")
	require.NoError(t, err)
	assert.Equal(t, "first!", first.Text)
	assert.NotEmpty(t, first.ID)

	f.ledger.WithClock(func() time.Time { return fixedNow.Add(time.Minute) })
	_, err = f.ledger.PostComment(ctx, e.ID, "s2", "second")
	require.NoError(t, err)

	comments, err := f.ledger.Comments(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
	assert.Equal(t, "first!", comments[1].Text)

	stored, err := f.events.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Counters.Comments)

	_, err = f.ledger.Comments(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	assert.Equal(t, []entities.InteractionKind{entities.InteractionComment, entities.InteractionComment}, f.metrics.kinds)
}
