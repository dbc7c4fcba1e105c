package application

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"campusevents/internal/domain"
	"campusevents/internal/domain/entities"
	"campusevents/internal/ports/output"
)

type LikeState struct {
	Liked      bool
	LikesCount int
}

type SaveState struct {
	Saved bool
}

// InteractionService is the interaction ledger: every call is a single
// marker-plus-counter unit of work on the interaction store.
type InteractionService struct {
	eventRepo output.EventRepository
	store     output.InteractionStore
	metrics   output.Metrics
	now       func() time.Time
	log       zerolog.Logger
}

func NewInteractionService(
	eventRepo output.EventRepository,
	store output.InteractionStore,
	metrics output.Metrics,
	log zerolog.Logger,
) *InteractionService {
	return &InteractionService{
		eventRepo: eventRepo,
		store:     store,
		metrics:   metrics,
		now:       time.Now,
		log:       log,
	}
}

// WithClock replaces the time source, for tests.
func (s *InteractionService) WithClock(now func() time.Time) *InteractionService {
	s.now = now
	return s
}

// ToggleLike likes or unlikes the event. The returned count is re-read from
// the event after the write so concurrent togglers converge on the stored
// value.
func (s *InteractionService) ToggleLike(ctx context.Context, eventID, userID string) (LikeState, error) {
	if strings.TrimSpace(userID) == "" {
		return LikeState{}, domain.ErrAuthRequired
	}
	res, err := s.apply(ctx, entities.Interaction{
		Kind:    entities.InteractionLike,
		EventID: eventID,
		UserID:  userID,
	})
	if err != nil {
		return LikeState{}, err
	}

	state := LikeState{Liked: res.Active, LikesCount: res.Count}
	if event, err := s.eventRepo.FindByID(ctx, eventID); err == nil {
		state.LikesCount = event.Counters.Likes
	} else {
		s.log.Warn().Err(err).Str("event_id", eventID).Msg("likes reconcile failed, keeping local count")
	}
	return state, nil
}

// ToggleSave adds the event to, or removes it from, the user's favourites.
// The stored snapshot is taken from the event as it is now.
func (s *InteractionService) ToggleSave(ctx context.Context, eventID, userID string) (SaveState, error) {
	if strings.TrimSpace(userID) == "" {
		return SaveState{}, domain.ErrAuthRequired
	}
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return SaveState{}, err
	}
	res, err := s.apply(ctx, entities.Interaction{
		Kind:     entities.InteractionSave,
		EventID:  eventID,
		UserID:   userID,
		Snapshot: event.Snapshot(),
	})
	if err != nil {
		return SaveState{}, err
	}
	return SaveState{Saved: res.Active}, nil
}

// Register appends an attendee record, bumps the attendee counter and writes
// the user's registration entry. Calling it twice registers twice.
func (s *InteractionService) Register(ctx context.Context, eventID, userID string) (int, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, domain.ErrAuthRequired
	}
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return 0, err
	}
	res, err := s.apply(ctx, entities.Interaction{
		Kind:     entities.InteractionRegister,
		EventID:  eventID,
		UserID:   userID,
		Snapshot: event.Snapshot(),
	})
	if err != nil {
		return 0, err
	}
	return res.Count, nil
}

// PostComment appends a comment. Blank text is rejected before the store is
// touched.
func (s *InteractionService) PostComment(ctx context.Context, eventID, userID, text string) (entities.Comment, error) {
	if strings.TrimSpace(userID) == "" {
		return entities.Comment{}, domain.ErrAuthRequired
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return entities.Comment{}, domain.ErrEmptyComment
	}
	res, err := s.apply(ctx, entities.Interaction{
		Kind:    entities.InteractionComment,
		EventID: eventID,
		UserID:  userID,
		Text:    text,
	})
	if err != nil {
		return entities.Comment{}, err
	}
	if res.Comment == nil {
		return entities.Comment{EventID: eventID, UserID: userID, Text: text}, nil
	}
	return *res.Comment, nil
}

func (s *InteractionService) apply(ctx context.Context, in entities.Interaction) (entities.InteractionResult, error) {
	in.At = s.now()
	res, err := s.store.Apply(ctx, in)
	if s.metrics != nil {
		s.metrics.InteractionApplied(in.Kind, err)
	}
	if err != nil {
		s.log.Error().Err(err).
			Str("kind", string(in.Kind)).
			Str("event_id", in.EventID).
			Str("user_id", in.UserID).
			Msg("interaction failed")
		return entities.InteractionResult{}, err
	}
	return res, nil
}

// Comments returns the event's comments, newest first.
func (s *InteractionService) Comments(ctx context.Context, eventID string) ([]entities.Comment, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.store.Comments(ctx, eventID)
}

// Status reports whether the user liked and saved the event.
func (s *InteractionService) Status(ctx context.Context, eventID, userID string) (entities.InteractionStatus, error) {
	if strings.TrimSpace(userID) == "" {
		return entities.InteractionStatus{}, domain.ErrAuthRequired
	}
	return s.store.Status(ctx, eventID, userID)
}

func (s *InteractionService) Registrations(ctx context.Context, userID string) ([]entities.Registration, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrAuthRequired
	}
	return s.store.Registrations(ctx, userID)
}

func (s *InteractionService) SavedPosts(ctx context.Context, userID string) ([]entities.SavedPost, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrAuthRequired
	}
	return s.store.SavedPosts(ctx, userID)
}
