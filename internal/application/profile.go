package application

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"campusevents/internal/domain"
	"campusevents/internal/domain/entities"
	"campusevents/internal/ports/output"
)

type ProfileService struct {
	profileRepo output.ProfileRepository
	eventRepo   output.EventRepository
	validate    *validator.Validate
	log         zerolog.Logger
}

func NewProfileService(profileRepo output.ProfileRepository, eventRepo output.EventRepository, log zerolog.Logger) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		eventRepo:   eventRepo,
		validate:    newValidator(),
		log:         log,
	}
}

// Me returns the caller's profile, creating it from the identity on first
// use. New managers start with an incomplete profile.
func (s *ProfileService) Me(ctx context.Context, who entities.Identity) (*entities.Profile, error) {
	if !who.IsAuthenticated() {
		return nil, domain.ErrAuthRequired
	}
	p, err := s.profileRepo.FindByID(ctx, who.UID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}
	p = entities.NewProfile(who.UID, who.Email, who.Role)
	if err := s.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info().Str("uid", who.UID).Str("role", string(p.Role)).Msg("profile created")
	return p, nil
}

// Update edits the caller's profile. A manager profile becomes complete once
// the society details are filled in.
func (s *ProfileService) Update(ctx context.Context, who entities.Identity, in ProfileInput) (*entities.Profile, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	p, err := s.Me(ctx, who)
	if err != nil {
		return nil, err
	}
	in.applyTo(p)
	if p.Role == entities.RoleManager {
		p.ProfileComplete = p.HasSocietyDetails()
	}
	if err := s.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Society returns a manager's public profile and the events they created.
func (s *ProfileService) Society(ctx context.Context, uid string) (*entities.Profile, []entities.Event, error) {
	p, err := s.profileRepo.FindByID(ctx, uid)
	if err != nil {
		return nil, nil, err
	}
	if p.Role != entities.RoleManager {
		return nil, nil, domain.ErrProfileNotFound
	}
	events, err := s.eventRepo.ListWhere(ctx, output.EventQuery{CreatedBy: uid})
	if err != nil {
		return nil, nil, err
	}
	return p, events, nil
}
