package mongostore

import (
	"time"

	"campusevents/internal/domain/entities"
)

type eventDoc struct {
	ID           string    `bson:"_id"`
	Title        string    `bson:"title"`
	Description  string    `bson:"description"`
	Category     string    `bson:"category,omitempty"`
	Type         string    `bson:"eventType,omitempty"`
	Venue        string    `bson:"venue"`
	Campus       string    `bson:"campus"`
	LocationLink string    `bson:"locationLink,omitempty"`
	PosterURL    string    `bson:"posterURL,omitempty"`
	BrochureLink string    `bson:"brochureLink,omitempty"`
	Tags         []string  `bson:"tags"`
	Visibility   string    `bson:"visibility"`
	EventDate    time.Time `bson:"eventDate,omitempty"`
	StartTime    string    `bson:"startTime,omitempty"`
	EndTime      string    `bson:"endTime,omitempty"`
	Duration     *int      `bson:"duration,omitempty"`
	DateTime     string    `bson:"dateTime,omitempty"`
	StartDate    time.Time `bson:"startDate,omitempty"`
	EndDate      time.Time `bson:"endDate,omitempty"`
	RegDeadline  time.Time `bson:"registrationDeadline,omitempty"`

	IsOpenEvent            bool    `bson:"isOpenEvent"`
	IsRegistrationRequired bool    `bson:"isRegistrationRequired"`
	RegistrationLink       string  `bson:"registrationLink,omitempty"`
	RegistrationFee        float64 `bson:"registrationFee"`
	MaxParticipants        *int    `bson:"maxParticipants,omitempty"`

	OrganizerID         string `bson:"organizerId"`
	OrganizerName       string `bson:"organizerName,omitempty"`
	OrganizerDepartment string `bson:"organizerDepartment,omitempty"`
	OrganizerEmail      string `bson:"organizerEmail,omitempty"`

	Status         string `bson:"status,omitempty"`
	ApprovalStatus string `bson:"approvalStatus,omitempty"`

	LikesCount     int `bson:"likesCount"`
	AttendeesCount int `bson:"attendeesCount"`
	CommentsCount  int `bson:"commentsCount"`
	SharesCount    int `bson:"sharesCount"`

	CreatedBy string    `bson:"createdBy"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// counterDoc is the projection read back after a counter update.
type counterDoc struct {
	LikesCount     int `bson:"likesCount"`
	AttendeesCount int `bson:"attendeesCount"`
	CommentsCount  int `bson:"commentsCount"`
}

type snapshotDoc struct {
	UserID        string    `bson:"userId"`
	EventID       string    `bson:"eventId"`
	EventTitle    string    `bson:"eventTitle"`
	EventImage    string    `bson:"eventImage,omitempty"`
	Venue         string    `bson:"venue"`
	Campus        string    `bson:"campus"`
	DateTime      string    `bson:"dateTime,omitempty"`
	StartTime     string    `bson:"startTime,omitempty"`
	EndTime       string    `bson:"endTime,omitempty"`
	OrganizerName string    `bson:"organizerName,omitempty"`
	CreatedAt     time.Time `bson:"createdAt"`
}

type likeDoc struct {
	EventID   string    `bson:"eventId"`
	UserID    string    `bson:"userId"`
	CreatedAt time.Time `bson:"createdAt"`
}

type attendeeDoc struct {
	ID       string    `bson:"_id"`
	EventID  string    `bson:"eventId"`
	UserID   string    `bson:"userId"`
	JoinedAt time.Time `bson:"joinedAt"`
}

type commentDoc struct {
	ID        string    `bson:"_id"`
	EventID   string    `bson:"eventId"`
	UserID    string    `bson:"userId"`
	Text      string    `bson:"text"`
	CreatedAt time.Time `bson:"createdAt"`
}

type profileDoc struct {
	UID             string    `bson:"_id"`
	Email           string    `bson:"email"`
	Role            string    `bson:"role"`
	DisplayName     string    `bson:"displayName"`
	FirstName       string    `bson:"firstName"`
	LastName        string    `bson:"lastName"`
	Department      string    `bson:"department"`
	Semester        string    `bson:"semester"`
	SocietyName     string    `bson:"societyName"`
	Category        string    `bson:"category"`
	Description     string    `bson:"description"`
	LogoURL         string    `bson:"logoURL"`
	FoundedYear     int       `bson:"foundedYear"`
	ContactEmail    string    `bson:"contactEmail"`
	ProfileComplete bool      `bson:"profileComplete"`
	CreatedAt       time.Time `bson:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt"`
}

func eventToDoc(e *entities.Event) eventDoc {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return eventDoc{
		ID:                     e.ID,
		Title:                  e.Title,
		Description:            e.Description,
		Category:               string(e.Category),
		Type:                   string(e.Type),
		Venue:                  e.Venue,
		Campus:                 e.Campus,
		LocationLink:           e.LocationLink,
		PosterURL:              e.PosterURL,
		BrochureLink:           e.BrochureLink,
		Tags:                   tags,
		Visibility:             string(e.Visibility),
		EventDate:              e.Schedule.EventDate,
		StartTime:              e.Schedule.StartTime,
		EndTime:                e.Schedule.EndTime,
		Duration:               e.Schedule.DurationMinutes,
		DateTime:               e.Schedule.DateTime,
		StartDate:              e.Schedule.StartDate,
		EndDate:                e.Schedule.EndDate,
		RegDeadline:            e.Schedule.RegistrationDeadline,
		IsOpenEvent:            e.IsOpenEvent,
		IsRegistrationRequired: e.IsRegistrationRequired,
		RegistrationLink:       e.RegistrationLink,
		RegistrationFee:        e.RegistrationFee,
		MaxParticipants:        e.MaxParticipants,
		OrganizerID:            e.OrganizerID,
		OrganizerName:          e.OrganizerName,
		OrganizerDepartment:    e.OrganizerDepartment,
		OrganizerEmail:         e.OrganizerEmail,
		Status:                 string(e.Status),
		ApprovalStatus:         string(e.ApprovalStatus),
		LikesCount:             e.Counters.Likes,
		AttendeesCount:         e.Counters.Attendees,
		CommentsCount:          e.Counters.Comments,
		SharesCount:            e.Counters.Shares,
		CreatedBy:              e.CreatedBy,
		CreatedAt:              e.CreatedAt,
		UpdatedAt:              e.UpdatedAt,
	}
}

func (d eventDoc) toDomain() entities.Event {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return entities.Event{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		Category:     entities.Category(d.Category),
		Type:         entities.EventType(d.Type),
		Venue:        d.Venue,
		Campus:       d.Campus,
		LocationLink: d.LocationLink,
		PosterURL:    d.PosterURL,
		BrochureLink: d.BrochureLink,
		Tags:         tags,
		Visibility:   entities.Visibility(d.Visibility),
		Schedule: entities.Schedule{
			EventDate:            d.EventDate,
			StartTime:            d.StartTime,
			EndTime:              d.EndTime,
			DurationMinutes:      d.Duration,
			DateTime:             d.DateTime,
			StartDate:            d.StartDate,
			EndDate:              d.EndDate,
			RegistrationDeadline: d.RegDeadline,
		},
		IsOpenEvent:            d.IsOpenEvent,
		IsRegistrationRequired: d.IsRegistrationRequired,
		RegistrationLink:       d.RegistrationLink,
		RegistrationFee:        d.RegistrationFee,
		MaxParticipants:        d.MaxParticipants,
		OrganizerID:            d.OrganizerID,
		OrganizerName:          d.OrganizerName,
		OrganizerDepartment:    d.OrganizerDepartment,
		OrganizerEmail:         d.OrganizerEmail,
		Status:                 entities.Status(d.Status),
		ApprovalStatus:         entities.ApprovalStatus(d.ApprovalStatus),
		Counters: entities.Counters{
			Likes:     d.LikesCount,
			Attendees: d.AttendeesCount,
			Comments:  d.CommentsCount,
			Shares:    d.SharesCount,
		},
		CreatedBy: d.CreatedBy,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func snapshotToDoc(userID string, s entities.Snapshot, at time.Time) snapshotDoc {
	return snapshotDoc{
		UserID:        userID,
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

func (d snapshotDoc) snapshot() entities.Snapshot {
	return entities.Snapshot{
		EventID:       d.EventID,
		EventTitle:    d.EventTitle,
		EventImage:    d.EventImage,
		Venue:         d.Venue,
		Campus:        d.Campus,
		DateTime:      d.DateTime,
		StartTime:     d.StartTime,
		EndTime:       d.EndTime,
		OrganizerName: d.OrganizerName,
	}
}

func profileToDoc(p *entities.Profile) profileDoc {
	return profileDoc{
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

func (d profileDoc) toDomain() entities.Profile {
	return entities.Profile{
		UID:             d.UID,
		Email:           d.Email,
		Role:            entities.Role(d.Role),
		DisplayName:     d.DisplayName,
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		Department:      d.Department,
		Semester:        d.Semester,
		SocietyName:     d.SocietyName,
		Category:        d.Category,
		Description:     d.Description,
		LogoURL:         d.LogoURL,
		FoundedYear:     d.FoundedYear,
		ContactEmail:    d.ContactEmail,
		ProfileComplete: d.ProfileComplete,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
