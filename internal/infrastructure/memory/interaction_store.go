package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"campusevents/internal/domain"
	"campusevents/internal/domain/entities"
	"campusevents/internal/ports/output"
)

var _ output.InteractionStore = (*InteractionStore)(nil)

type InteractionStore struct {
	db *DB
}

func NewInteractionStore(db *DB) *InteractionStore {
	return &InteractionStore{db: db}
}

func (s *InteractionStore) Apply(ctx context.Context, in entities.Interaction) (entities.InteractionResult, error) {
	if err := ctx.Err(); err != nil {
		return entities.InteractionResult{}, domain.Repository("apply interaction", err)
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	se, ok := s.db.events[in.EventID]
	if !ok {
		return entities.InteractionResult{}, domain.ErrEventNotFound
	}
	at := in.At
	if at.IsZero() {
		at = s.db.now()
	}
	counters := &se.event.Counters

	switch in.Kind {
	case entities.InteractionLike:
		likes := s.db.likes[in.EventID]
		if likes[in.UserID] {
			delete(likes, in.UserID)
			counters.Likes = max(0, counters.Likes-1)
			return entities.InteractionResult{Active: false, Count: counters.Likes}, nil
		}
		if likes == nil {
			likes = map[string]bool{}
			s.db.likes[in.EventID] = likes
		}
		likes[in.UserID] = true
		counters.Likes++
		return entities.InteractionResult{Active: true, Count: counters.Likes}, nil

	case entities.InteractionSave:
		favs := s.db.favourites[in.UserID]
		if _, saved := favs[in.EventID]; saved {
			delete(favs, in.EventID)
			return entities.InteractionResult{Active: false}, nil
		}
		if favs == nil {
			favs = map[string]entities.SavedPost{}
			s.db.favourites[in.UserID] = favs
		}
		favs[in.EventID] = entities.SavedPost{UserID: in.UserID, Snapshot: in.Snapshot, CreatedAt: at}
		return entities.InteractionResult{Active: true}, nil

	case entities.InteractionRegister:
		s.db.attendees[in.EventID] = append(s.db.attendees[in.EventID], entities.Attendee{
			ID:       uuid.NewString(),
			EventID:  in.EventID,
			UserID:   in.UserID,
			JoinedAt: at,
		})
		counters.Attendees++
		regs := s.db.registrations[in.UserID]
		if regs == nil {
			regs = map[string]entities.Registration{}
			s.db.registrations[in.UserID] = regs
		}
		regs[in.EventID] = entities.Registration{UserID: in.UserID, Snapshot: in.Snapshot, CreatedAt: at}
		return entities.InteractionResult{Active: true, Count: counters.Attendees}, nil

	case entities.InteractionComment:
		c := entities.Comment{
			ID:        uuid.NewString(),
			EventID:   in.EventID,
			UserID:    in.UserID,
			Text:      in.Text,
			CreatedAt: at,
		}
		s.db.comments[in.EventID] = append(s.db.comments[in.EventID], c)
		counters.Comments++
		return entities.InteractionResult{Active: true, Count: counters.Comments, Comment: &c}, nil
	}
	return entities.InteractionResult{}, domain.Validation("unknown interaction %q", in.Kind)
}

func (s *InteractionStore) Status(ctx context.Context, eventID, userID string) (entities.InteractionStatus, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	_, saved := s.db.favourites[userID][eventID]
	return entities.InteractionStatus{
		Liked: s.db.likes[eventID][userID],
		Saved: saved,
	}, nil
}

func (s *InteractionStore) Comments(ctx context.Context, eventID string) ([]entities.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	stored := s.db.comments[eventID]
	out := make([]entities.Comment, len(stored))
	// Appended in time order; newest first means reversed.
	for i := range stored {
		out[len(stored)-1-i] = stored[i]
	}
	return out, nil
}

func (s *InteractionStore) Registrations(ctx context.Context, userID string) ([]entities.Registration, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]entities.Registration, 0, len(s.db.registrations[userID]))
	for _, r := range s.db.registrations[userID] {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return newer(out[i].CreatedAt, out[j].CreatedAt, out[i].Snapshot.EventID, out[j].Snapshot.EventID)
	})
	return out, nil
}

func (s *InteractionStore) SavedPosts(ctx context.Context, userID string) ([]entities.SavedPost, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]entities.SavedPost, 0, len(s.db.favourites[userID]))
	for _, p := range s.db.favourites[userID] {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return newer(out[i].CreatedAt, out[j].CreatedAt, out[i].Snapshot.EventID, out[j].Snapshot.EventID)
	})
	return out, nil
}

// newer orders map-sourced entries newest first, ties broken by event id.
func newer(a, b time.Time, idA, idB string) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return idA > idB
}
