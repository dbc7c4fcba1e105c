package feed

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/internal/domain/entities"
)

var t1 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func published(id string, date time.Time) entities.Event {
	e := entities.Event{
		ID:             id,
		Title:          "Event " + id,
		CreatedBy:      "u1",
		Status:         entities.StatusPublished,
		ApprovalStatus: entities.ApprovalApproved,
	}
	if !date.IsZero() {
		e.Schedule.EventDate = date
		e.Schedule.StartTime = date.Format("15:04")
	}
	e.Normalize(time.UTC)
	return e
}

func ids(events []entities.Event) []string {
	out := make([]string, len(events))
	for i := range events {
		out[i] = events[i].ID
	}
	return out
}

func TestSelectScenarios(t *testing.T) {
	now := t1.Add(12 * time.Hour)

	t.Run("future event appears in all and upcoming, not past", func(t *testing.T) {
		e := published("e1", t1.Add(24*time.Hour))
		events := []entities.Event{e}

		assert.Equal(t, []string{"e1"}, ids(Select(events, Options{Mode: ModeStudentAll, Now: now})))
		assert.Equal(t, []string{"e1"}, ids(Select(events, Options{Mode: ModeStudentUpcoming, Now: now})))
		assert.Empty(t, Select(events, Options{Mode: ModeStudentPast, Now: now}))
	})

	t.Run("passed registration deadline drops out of upcoming only", func(t *testing.T) {
		e := published("e1", t1.Add(24*time.Hour))
		e.IsRegistrationRequired = true
		e.Schedule.RegistrationDeadline = t1.Add(6 * time.Hour)
		events := []entities.Event{e}

		assert.Equal(t, []string{"e1"}, ids(Select(events, Options{Mode: ModeStudentAll, Now: now})))
		assert.Empty(t, Select(events, Options{Mode: ModeStudentUpcoming, Now: now}))
	})

	t.Run("manager_events keeps only the caller's events in order", func(t *testing.T) {
		a := published("a", t1)
		a.CreatedBy = "u9"
		b := published("b", t1)
		b.CreatedBy = "u9"
		c := published("c", t1)
		c.CreatedBy = "u7"
		events := []entities.Event{a, c, b}

		got := Select(events, Options{Mode: ModeManagerEvents, CurrentUserID: "u9", Now: now})
		assert.Equal(t, []string{"a", "b"}, ids(got))
	})

	t.Run("manager_events without a user returns nothing", func(t *testing.T) {
		events := []entities.Event{published("a", t1)}
		assert.Empty(t, Select(events, Options{Mode: ModeManagerEvents, Now: now}))
	})
}

func TestSelectModes(t *testing.T) {
	now := t1
	past := published("past", t1.Add(-time.Hour))
	future := published("future", t1.Add(time.Hour))
	undated := published("undated", time.Time{})
	draft := published("draft", t1.Add(time.Hour))
	draft.Status = entities.StatusDraft
	rejected := published("rejected", t1.Add(time.Hour))
	rejected.ApprovalStatus = entities.ApprovalRejected
	pending := published("pending", t1.Add(time.Hour))
	pending.ApprovalStatus = entities.ApprovalPending
	legacy := published("legacy", t1.Add(time.Hour))
	legacy.Status = ""
	legacy.ApprovalStatus = ""
	lower := published("lower", t1.Add(time.Hour))
	lower.Status = "published"
	attended := published("attended", t1.Add(-time.Hour))
	attended.Counters.Attendees = 3

	events := []entities.Event{past, future, undated, draft, rejected, pending, legacy, lower, attended}

	tests := []struct {
		mode Mode
		want []string
	}{
		{ModeAll, ids(events)},
		{"", ids(events)},
		{ModeFavorites, ids(events)},
		{ModeSocieties, ids(events)},
		{"Student_All", ids(events)},
		{ModeAttended, []string{"attended"}},
		{ModeStudentAll, []string{"future", "undated", "pending", "legacy", "lower"}},
		{ModeManagerAll, []string{"future", "undated", "pending", "legacy", "lower"}},
		{ModeStudentUpcoming, []string{"future", "undated", "pending", "legacy", "lower"}},
		{ModeManagerUpcoming, []string{"future", "undated", "pending", "legacy", "lower"}},
		{ModeStudentPast, []string{"past", "attended"}},
		{ModeManagerPast, []string{"past", "attended"}},
	}

	for _, tc := range tests {
		t.Run(string(tc.mode), func(t *testing.T) {
			got := Select(events, Options{Mode: tc.mode, Now: now})
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestSelectBoundaries(t *testing.T) {
	now := t1

	t.Run("event exactly at now is upcoming", func(t *testing.T) {
		e := published("e", now)
		assert.Len(t, Select([]entities.Event{e}, Options{Mode: ModeStudentUpcoming, Now: now}), 1)
		assert.Empty(t, Select([]entities.Event{e}, Options{Mode: ModeStudentPast, Now: now}))
	})

	t.Run("deadline exactly at now still allows registration", func(t *testing.T) {
		e := published("e", now.Add(time.Hour))
		e.IsRegistrationRequired = true
		e.Schedule.RegistrationDeadline = now
		assert.True(t, CanStillRegister(&e, now))
	})

	t.Run("open event ignores deadline", func(t *testing.T) {
		e := published("e", now.Add(time.Hour))
		e.IsOpenEvent = true
		e.IsRegistrationRequired = true
		e.Schedule.RegistrationDeadline = now.Add(-time.Hour)
		assert.True(t, CanStillRegister(&e, now))
	})

	t.Run("registration not required ignores deadline", func(t *testing.T) {
		e := published("e", now.Add(time.Hour))
		e.Schedule.RegistrationDeadline = now.Add(-time.Hour)
		assert.True(t, CanStillRegister(&e, now))
	})

	t.Run("fee and capacity do not filter", func(t *testing.T) {
		e := published("e", now.Add(time.Hour))
		e.RegistrationFee = 50
		capacity := 0
		e.MaxParticipants = &capacity
		e.RegistrationLink = ""
		assert.Len(t, Select([]entities.Event{e}, Options{Mode: ModeStudentUpcoming, Now: now}), 1)
	})
}

func TestSelectSearch(t *testing.T) {
	a := published("a", t1)
	a.Title = "Robotics Workshop"
	b := published("b", t1)
	b.Description = "Bring your own ROBOT"
	c := published("c", t1)
	c.Title = "Chess"
	c.Venue = "robotics lab"
	events := []entities.Event{a, b, c}

	got := Select(events, Options{Mode: ModeAll, Search: "robot", Now: t1})
	assert.Equal(t, []string{"a", "b"}, ids(got))

	got = Select(events, Options{Mode: ModeAll, Search: "", Now: t1})
	assert.Len(t, got, 3)

	t.Run("whitespace is part of the term", func(t *testing.T) {
		joined := published("joined", t1)
		joined.Title = "ab"
		spaced := published("spaced", t1)
		spaced.Title = "a b"
		events := []entities.Event{joined, spaced}

		for _, term := range []string{" ", "a "} {
			got := Select(events, Options{Mode: ModeAll, Search: term, Now: t1})
			assert.Equal(t, []string{"spaced"}, ids(got), "search %q", term)
		}
	})
}

// fixture builds a mixed list covering every branch of the filter.
func fixture(now time.Time) []entities.Event {
	var out []entities.Event
	for i := 0; i < 40; i++ {
		var date time.Time
		if i%5 != 0 {
			date = now.Add(time.Duration(i-20) * time.Hour)
		}
		e := published(fmt.Sprintf("e%02d", i), date)
		if i%3 == 0 {
			e.Title = "Hackathon"
		}
		if i%4 == 0 {
			e.IsRegistrationRequired = true
			e.Schedule.RegistrationDeadline = now.Add(time.Duration(i-30) * time.Hour)
		}
		if i%7 == 0 {
			e.ApprovalStatus = entities.ApprovalRejected
		}
		if i%6 == 0 {
			e.Status = entities.StatusCancelled
		}
		if i%2 == 0 {
			e.CreatedBy = "u2"
		}
		e.Counters.Attendees = i % 3
		out = append(out, e)
	}
	return out
}

func isSubsequence(sub, full []entities.Event) bool {
	j := 0
	for i := range full {
		if j < len(sub) && sub[j].ID == full[i].ID {
			j++
		}
	}
	return j == len(sub)
}

func TestSelectProperties(t *testing.T) {
	now := t1
	events := fixture(now)
	modes := []Mode{
		ModeAll, ModeManagerEvents, ModeManagerAll, ModeAttended, ModeFavorites, ModeSocieties,
		ModeStudentAll, ModeStudentUpcoming, ModeManagerUpcoming, ModeStudentPast, ModeManagerPast,
	}

	t.Run("output is an ordered subsequence", func(t *testing.T) {
		for _, m := range modes {
			for _, q := range []string{"", "hack"} {
				got := Select(events, Options{Mode: m, Search: q, CurrentUserID: "u2", Now: now})
				require.True(t, isSubsequence(got, events), "mode %s search %q", m, q)
			}
		}
	})

	t.Run("search narrows every mode", func(t *testing.T) {
		for _, m := range modes {
			all := Select(events, Options{Mode: m, CurrentUserID: "u2", Now: now})
			narrowed := Select(events, Options{Mode: m, Search: "hack", CurrentUserID: "u2", Now: now})
			seen := map[string]bool{}
			for _, e := range all {
				seen[e.ID] = true
			}
			for _, e := range narrowed {
				assert.True(t, seen[e.ID], "mode %s: %s not in unfiltered result", m, e.ID)
			}
		}
	})

	t.Run("past and upcoming are exclusive", func(t *testing.T) {
		past := map[string]bool{}
		for _, e := range Select(events, Options{Mode: ModeStudentPast, Now: now}) {
			past[e.ID] = true
		}
		for _, e := range Select(events, Options{Mode: ModeStudentUpcoming, Now: now}) {
			assert.False(t, past[e.ID], "%s in both past and upcoming", e.ID)
		}
		for i := range events {
			e := &events[i]
			if e.Schedule.Resolved.IsZero() {
				assert.False(t, past[e.ID], "undated %s in past", e.ID)
				continue
			}
			assert.Equal(t, e.Schedule.Resolved.Before(now), past[e.ID], e.ID)
		}
	})

	t.Run("undated events are not dropped for lacking a date", func(t *testing.T) {
		upcoming := map[string]bool{}
		for _, e := range Select(events, Options{Mode: ModeStudentUpcoming, Now: now}) {
			upcoming[e.ID] = true
		}
		for i := range events {
			e := &events[i]
			if !e.Schedule.Resolved.IsZero() {
				continue
			}
			wantListed := e.EffectiveApproval() != entities.ApprovalRejected &&
				e.EffectiveStatus() == entities.StatusPublished &&
				CanStillRegister(e, now)
			assert.Equal(t, wantListed, upcoming[e.ID], e.ID)
		}
	})
}
