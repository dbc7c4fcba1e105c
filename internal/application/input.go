package application

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"campusevents/internal/domain"
	"campusevents/internal/domain/entities"
)

// EventInput is the editable part of an event, as submitted by a manager.
type EventInput struct {
	Title        string              `validate:"required,max=200"`
	Description  string              `validate:"max=10000"`
	Category     entities.Category   `validate:"omitempty,oneof=Seminar Workshop Sports Cultural Academic Competition"`
	Type         entities.EventType  `validate:"omitempty,oneof=Online Offline Hybrid"`
	Venue        string              `validate:"max=300"`
	Campus       string              `validate:"max=300"`
	LocationLink string              `validate:"omitempty,url"`
	PosterURL    string              `validate:"omitempty,url"`
	BrochureLink string              `validate:"omitempty,url"`
	Tags         []string            `validate:"max=30,dive,max=50"`
	Visibility   entities.Visibility `validate:"omitempty,oneof=public private"`

	EventDate            time.Time
	StartTime            string `validate:"omitempty,clock"`
	EndTime              string `validate:"omitempty,clock"`
	DurationMinutes      *int   `validate:"omitempty,min=0"`
	StartDate            time.Time
	EndDate              time.Time
	RegistrationDeadline time.Time

	IsOpenEvent            bool
	IsRegistrationRequired bool
	RegistrationLink       string  `validate:"omitempty,url"`
	RegistrationFee        float64 `validate:"min=0"`
	MaxParticipants        *int    `validate:"omitempty,min=1"`

	OrganizerName       string `validate:"max=200"`
	OrganizerDepartment string `validate:"max=200"`
	OrganizerEmail      string `validate:"omitempty,email"`

	Status entities.Status `validate:"omitempty,oneof=Draft Published Completed Cancelled"`
}

// ProfileInput carries the profile fields a user may edit.
type ProfileInput struct {
	DisplayName string `validate:"max=200"`
	FirstName   string `validate:"max=100"`
	LastName    string `validate:"max=100"`
	Department  string `validate:"max=200"`
	Semester    string `validate:"max=20"`

	SocietyName  string `validate:"max=200"`
	Category     string `validate:"max=100"`
	Description  string `validate:"max=5000"`
	LogoURL      string `validate:"omitempty,url"`
	FoundedYear  int    `validate:"omitempty,min=1800,max=2200"`
	ContactEmail string `validate:"omitempty,email"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, _, ok := entities.ParseClock(fl.Field().String())
		return ok
	})
	return v
}

// validateStruct converts validator failures into a domain validation error
// naming the first offending field.
func validateStruct(v *validator.Validate, in any) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.Validation("%s failed %q", fe.Field(), fe.Tag())
	}
	return domain.Validation("%v", err)
}

// applyTo copies the input onto e. Identity, ownership, counters and audit
// fields are left alone.
func (in EventInput) applyTo(e *entities.Event) {
	e.Title = strings.TrimSpace(in.Title)
	e.Description = in.Description
	e.Category = in.Category
	e.Type = in.Type
	e.Venue = strings.TrimSpace(in.Venue)
	e.Campus = strings.TrimSpace(in.Campus)
	e.LocationLink = strings.TrimSpace(in.LocationLink)
	e.PosterURL = strings.TrimSpace(in.PosterURL)
	e.BrochureLink = strings.TrimSpace(in.BrochureLink)
	e.Tags = cleanTags(in.Tags)
	e.Visibility = in.Visibility
	if e.Visibility == "" {
		e.Visibility = entities.VisibilityPublic
	}

	e.Schedule.EventDate = in.EventDate
	e.Schedule.StartTime = strings.TrimSpace(in.StartTime)
	e.Schedule.EndTime = strings.TrimSpace(in.EndTime)
	if in.DurationMinutes != nil {
		d := *in.DurationMinutes
		e.Schedule.DurationMinutes = &d
	}
	e.Schedule.StartDate = in.StartDate
	e.Schedule.EndDate = in.EndDate
	e.Schedule.RegistrationDeadline = in.RegistrationDeadline

	e.IsOpenEvent = in.IsOpenEvent
	e.IsRegistrationRequired = in.IsRegistrationRequired
	e.RegistrationLink = strings.TrimSpace(in.RegistrationLink)
	e.RegistrationFee = in.RegistrationFee
	e.MaxParticipants = nil
	if in.MaxParticipants != nil {
		m := *in.MaxParticipants
		e.MaxParticipants = &m
	}

	e.OrganizerName = strings.TrimSpace(in.OrganizerName)
	e.OrganizerDepartment = strings.TrimSpace(in.OrganizerDepartment)
	e.OrganizerEmail = strings.TrimSpace(in.OrganizerEmail)

	e.Status = in.Status
	if e.Status == "" {
		e.Status = entities.StatusPublished
	}
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (in ProfileInput) applyTo(p *entities.Profile) {
	p.DisplayName = strings.TrimSpace(in.DisplayName)
	p.FirstName = strings.TrimSpace(in.FirstName)
	p.LastName = strings.TrimSpace(in.LastName)
	if p.Role == entities.RoleManager {
		p.SocietyName = strings.TrimSpace(in.SocietyName)
		p.Category = strings.TrimSpace(in.Category)
		p.Description = strings.TrimSpace(in.Description)
		p.LogoURL = strings.TrimSpace(in.LogoURL)
		p.FoundedYear = in.FoundedYear
		p.ContactEmail = strings.TrimSpace(in.ContactEmail)
		return
	}
	p.Department = strings.TrimSpace(in.Department)
	p.Semester = strings.TrimSpace(in.Semester)
}
