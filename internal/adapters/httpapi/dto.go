package httpapi

import (
	"strings"
	"time"

	"campusevents/internal/application"
	"campusevents/internal/domain"
	"campusevents/internal/domain/entities"
)

type eventResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category,omitempty"`
	EventType    string   `json:"eventType,omitempty"`
	Venue        string   `json:"venue"`
	Campus       string   `json:"campus"`
	LocationLink string   `json:"locationLink,omitempty"`
	PosterURL    string   `json:"posterURL,omitempty"`
	BrochureLink string   `json:"brochureLink,omitempty"`
	Tags         []string `json:"tags"`
	Visibility   string   `json:"visibility"`

	EventDate            *time.Time `json:"eventDate,omitempty"`
	StartTime            string     `json:"startTime,omitempty"`
	EndTime              string     `json:"endTime,omitempty"`
	Duration             *int       `json:"duration,omitempty"`
	DateTime             string     `json:"dateTime,omitempty"`
	StartDate            *time.Time `json:"startDate,omitempty"`
	EndDate              *time.Time `json:"endDate,omitempty"`
	RegistrationDeadline *time.Time `json:"registrationDeadline,omitempty"`
	ResolvedDate         *time.Time `json:"resolvedDate,omitempty"`

	IsOpenEvent            bool    `json:"isOpenEvent"`
	IsRegistrationRequired bool    `json:"isRegistrationRequired"`
	RegistrationLink       string  `json:"registrationLink,omitempty"`
	RegistrationFee        float64 `json:"registrationFee"`
	MaxParticipants        *int    `json:"maxParticipants,omitempty"`

	OrganizerID         string `json:"organizerId"`
	OrganizerName       string `json:"organizerName,omitempty"`
	OrganizerDepartment string `json:"organizerDepartment,omitempty"`
	OrganizerEmail      string `json:"organizerEmail,omitempty"`

	Status         string `json:"status"`
	ApprovalStatus string `json:"approvalStatus"`

	LikesCount     int `json:"likesCount"`
	AttendeesCount int `json:"attendeesCount"`
	CommentsCount  int `json:"commentsCount"`
	SharesCount    int `json:"sharesCount"`

	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func toEventResponse(e *entities.Event) eventResponse {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return eventResponse{
		ID:                     e.ID,
		Title:                  e.Title,
		Description:            e.Description,
		Category:               string(e.Category),
		EventType:              string(e.Type),
		Venue:                  e.Venue,
		Campus:                 e.Campus,
		LocationLink:           e.LocationLink,
		PosterURL:              e.PosterURL,
		BrochureLink:           e.BrochureLink,
		Tags:                   tags,
		Visibility:             string(e.Visibility),
		EventDate:              timePtr(e.Schedule.EventDate),
		StartTime:              e.Schedule.StartTime,
		EndTime:                e.Schedule.EndTime,
		Duration:               e.Schedule.DurationMinutes,
		DateTime:               e.Schedule.DateTime,
		StartDate:              timePtr(e.Schedule.StartDate),
		EndDate:                timePtr(e.Schedule.EndDate),
		RegistrationDeadline:   timePtr(e.Schedule.RegistrationDeadline),
		ResolvedDate:           timePtr(e.Schedule.Resolved),
		IsOpenEvent:            e.IsOpenEvent,
		IsRegistrationRequired: e.IsRegistrationRequired,
		RegistrationLink:       e.RegistrationLink,
		RegistrationFee:        e.RegistrationFee,
		MaxParticipants:        e.MaxParticipants,
		OrganizerID:            e.OrganizerID,
		OrganizerName:          e.OrganizerName,
		OrganizerDepartment:    e.OrganizerDepartment,
		OrganizerEmail:         e.OrganizerEmail,
		Status:                 string(e.EffectiveStatus()),
		ApprovalStatus:         string(e.EffectiveApproval()),
		LikesCount:             e.Counters.Likes,
		AttendeesCount:         e.Counters.Attendees,
		CommentsCount:          e.Counters.Comments,
		SharesCount:            e.Counters.Shares,
		CreatedBy:              e.CreatedBy,
		CreatedAt:              e.CreatedAt,
		UpdatedAt:              e.UpdatedAt,
	}
}

func toEventList(events []entities.Event) []eventResponse {
	out := make([]eventResponse, len(events))
	for i := range events {
		out[i] = toEventResponse(&events[i])
	}
	return out
}

// eventRequest is the create/update body. Dates accept YYYY-MM-DD or an ISO
// instant; tags may come as a list or as a comma separated string.
type eventRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	EventType    string   `json:"eventType"`
	Venue        string   `json:"venue"`
	Campus       string   `json:"campus"`
	LocationLink string   `json:"locationLink"`
	PosterURL    string   `json:"posterURL"`
	BrochureLink string   `json:"brochureLink"`
	Tags         []string `json:"tags"`
	TagsText     string   `json:"tagsText"`
	Visibility   string   `json:"visibility"`

	EventDate            string `json:"eventDate"`
	StartTime            string `json:"startTime"`
	EndTime              string `json:"endTime"`
	Duration             *int   `json:"duration"`
	StartDate            string `json:"startDate"`
	EndDate              string `json:"endDate"`
	RegistrationDeadline string `json:"registrationDeadline"`

	IsOpenEvent            bool    `json:"isOpenEvent"`
	IsRegistrationRequired bool    `json:"isRegistrationRequired"`
	RegistrationLink       string  `json:"registrationLink"`
	RegistrationFee        float64 `json:"registrationFee"`
	MaxParticipants        *int    `json:"maxParticipants"`

	OrganizerName       string `json:"organizerName"`
	OrganizerDepartment string `json:"organizerDepartment"`
	OrganizerEmail      string `json:"organizerEmail"`

	Status string `json:"status"`
}

func (req eventRequest) toInput(loc *time.Location) (application.EventInput, error) {
	in := application.EventInput{
		Title:                  req.Title,
		Description:            req.Description,
		Category:               entities.Category(req.Category),
		Type:                   entities.EventType(req.EventType),
		Venue:                  req.Venue,
		Campus:                 req.Campus,
		LocationLink:           req.LocationLink,
		PosterURL:              req.PosterURL,
		BrochureLink:           req.BrochureLink,
		Tags:                   req.Tags,
		Visibility:             entities.Visibility(req.Visibility),
		StartTime:              req.StartTime,
		EndTime:                req.EndTime,
		DurationMinutes:        req.Duration,
		IsOpenEvent:            req.IsOpenEvent,
		IsRegistrationRequired: req.IsRegistrationRequired,
		RegistrationLink:       req.RegistrationLink,
		RegistrationFee:        req.RegistrationFee,
		MaxParticipants:        req.MaxParticipants,
		OrganizerName:          req.OrganizerName,
		OrganizerDepartment:    req.OrganizerDepartment,
		OrganizerEmail:         req.OrganizerEmail,
		Status:                 entities.Status(req.Status),
	}
	if len(in.Tags) == 0 && strings.TrimSpace(req.TagsText) != "" {
		in.Tags = entities.ParseTags(req.TagsText)
	}

	dates := []struct {
		field string
		raw   string
		dst   *time.Time
	}{
		{"eventDate", req.EventDate, &in.EventDate},
		{"startDate", req.StartDate, &in.StartDate},
		{"endDate", req.EndDate, &in.EndDate},
		{"registrationDeadline", req.RegistrationDeadline, &in.RegistrationDeadline},
	}
	for _, d := range dates {
		if strings.TrimSpace(d.raw) == "" {
			continue
		}
		t, ok := entities.ParseDateTime(d.raw, loc)
		if !ok {
			return application.EventInput{}, domain.Validation("%s is not a date: %q", d.field, d.raw)
		}
		*d.dst = t
	}
	return in, nil
}

type commentRequest struct {
	Text string `json:"text"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCommentResponse(c entities.Comment) commentResponse {
	return commentResponse{ID: c.ID, EventID: c.EventID, UserID: c.UserID, Text: c.Text, CreatedAt: c.CreatedAt}
}

type snapshotResponse struct {
	EventID       string    `json:"eventId"`
	EventTitle    string    `json:"eventTitle"`
	EventImage    string    `json:"eventImage,omitempty"`
	Venue         string    `json:"venue"`
	Campus        string    `json:"campus"`
	DateTime      string    `json:"dateTime,omitempty"`
	StartTime     string    `json:"startTime,omitempty"`
	EndTime       string    `json:"endTime,omitempty"`
	OrganizerName string    `json:"organizerName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toSnapshotResponse(s entities.Snapshot, at time.Time) snapshotResponse {
	return snapshotResponse{
		EventID:       s.EventID,
		EventTitle:    s.EventTitle,
		EventImage:    s.EventImage,
		Venue:         s.Venue,
		Campus:        s.Campus,
		DateTime:      s.DateTime,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		OrganizerName: s.OrganizerName,
		CreatedAt:     at,
	}
}

type profileResponse struct {
	UID             string    `json:"uid"`
	Email           string    `json:"email,omitempty"`
	Role            string    `json:"role"`
	DisplayName     string    `json:"displayName,omitempty"`
	FirstName       string    `json:"firstName,omitempty"`
	LastName        string    `json:"lastName,omitempty"`
	Department      string    `json:"department,omitempty"`
	Semester        string    `json:"semester,omitempty"`
	SocietyName     string    `json:"societyName,omitempty"`
	Category        string    `json:"category,omitempty"`
	Description     string    `json:"description,omitempty"`
	LogoURL         string    `json:"logoURL,omitempty"`
	FoundedYear     int       `json:"foundedYear,omitempty"`
	ContactEmail    string    `json:"contactEmail,omitempty"`
	ProfileComplete bool      `json:"profileComplete"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toProfileResponse(p *entities.Profile) profileResponse {
	return profileResponse{
		UID:             p.UID,
		Email:           p.Email,
		Role:            string(p.Role),
		DisplayName:     p.DisplayName,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Department:      p.Department,
		Semester:        p.Semester,
		SocietyName:     p.SocietyName,
		Category:        p.Category,
		Description:     p.Description,
		LogoURL:         p.LogoURL,
		FoundedYear:     p.FoundedYear,
		ContactEmail:    p.ContactEmail,
		ProfileComplete: p.ProfileComplete,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

type profileRequest struct {
	DisplayName  string `json:"displayName"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Department   string `json:"department"`
	Semester     string `json:"semester"`
	SocietyName  string `json:"societyName"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	LogoURL      string `json:"logoURL"`
	FoundedYear  int    `json:"foundedYear"`
	ContactEmail string `json:"contactEmail"`
}

func (req profileRequest) toInput() application.ProfileInput {
	return application.ProfileInput(req)
}
