package database

import (
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"campusevents/internal/domain/entities"
)

const eventColumns = `id, title, description, category, event_type, venue, campus,
	location_link, poster_url, brochure_link, tags, visibility,
	event_date, start_time, end_time, duration_minutes, date_time,
	start_date, end_date, registration_deadline,
	is_open_event, is_registration_required, registration_link, registration_fee, max_participants,
	organizer_id, organizer_name, organizer_department, organizer_email,
	status, approval_status,
	likes_count, attendees_count, comments_count, shares_count,
	created_by, created_at, updated_at`

const profileColumns = `uid, email, role, display_name, first_name, last_name, department, semester,
	society_name, category, description, logo_url, founded_year, contact_email,
	profile_complete, created_at, updated_at`

const snapshotColumns = `event_id, event_title, event_image, venue, campus, date_time,
	start_time, end_time, organizer_name, created_at`

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

// timeToPgtype maps the zero time to NULL.
func timeToPgtype(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func scanEvent(row pgx.CollectableRow) (entities.Event, error) {
	var (
		e                                          entities.Event
		eventDate, startDate, endDate, regDeadline pgtype.Timestamptz
	)
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Category, &e.Type, &e.Venue, &e.Campus,
		&e.LocationLink, &e.PosterURL, &e.BrochureLink, &e.Tags, &e.Visibility,
		&eventDate, &e.Schedule.StartTime, &e.Schedule.EndTime, &e.Schedule.DurationMinutes, &e.Schedule.DateTime,
		&startDate, &endDate, &regDeadline,
		&e.IsOpenEvent, &e.IsRegistrationRequired, &e.RegistrationLink, &e.RegistrationFee, &e.MaxParticipants,
		&e.OrganizerID, &e.OrganizerName, &e.OrganizerDepartment, &e.OrganizerEmail,
		&e.Status, &e.ApprovalStatus,
		&e.Counters.Likes, &e.Counters.Attendees, &e.Counters.Comments, &e.Counters.Shares,
		&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return entities.Event{}, err
	}
	e.Schedule.EventDate = pgtypeTimestamptzToTime(eventDate)
	e.Schedule.StartDate = pgtypeTimestamptzToTime(startDate)
	e.Schedule.EndDate = pgtypeTimestamptzToTime(endDate)
	e.Schedule.RegistrationDeadline = pgtypeTimestamptzToTime(regDeadline)
	if e.Tags == nil {
		e.Tags = []string{}
	}
	return e, nil
}

// editableArgs are the values written by both insert and update, in the
// column order used by eventEditableColumns.
func editableArgs(e *entities.Event) []any {
	return []any{
		e.Title, e.Description, string(e.Category), string(e.Type), e.Venue, e.Campus,
		e.LocationLink, e.PosterURL, e.BrochureLink, tagsOrEmpty(e.Tags), string(e.Visibility),
		timeToPgtype(e.Schedule.EventDate), e.Schedule.StartTime, e.Schedule.EndTime,
		e.Schedule.DurationMinutes, e.Schedule.DateTime,
		timeToPgtype(e.Schedule.StartDate), timeToPgtype(e.Schedule.EndDate), timeToPgtype(e.Schedule.RegistrationDeadline),
		e.IsOpenEvent, e.IsRegistrationRequired, e.RegistrationLink, e.RegistrationFee, e.MaxParticipants,
		e.OrganizerName, e.OrganizerDepartment, e.OrganizerEmail,
		string(e.Status),
	}
}

var eventEditableColumns = []string{
	"title", "description", "category", "event_type", "venue", "campus",
	"location_link", "poster_url", "brochure_link", "tags", "visibility",
	"event_date", "start_time", "end_time",
	"duration_minutes", "date_time",
	"start_date", "end_date", "registration_deadline",
	"is_open_event", "is_registration_required", "registration_link", "registration_fee", "max_participants",
	"organizer_name", "organizer_department", "organizer_email",
	"status",
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func scanProfile(row pgx.CollectableRow) (entities.Profile, error) {
	var p entities.Profile
	err := row.Scan(
		&p.UID, &p.Email, &p.Role, &p.DisplayName, &p.FirstName, &p.LastName, &p.Department, &p.Semester,
		&p.SocietyName, &p.Category, &p.Description, &p.LogoURL, &p.FoundedYear, &p.ContactEmail,
		&p.ProfileComplete, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func snapshotArgs(s entities.Snapshot) []any {
	return []any{
		s.EventID, s.EventTitle, s.EventImage, s.Venue, s.Campus, s.DateTime,
		s.StartTime, s.EndTime, s.OrganizerName,
	}
}

func scanSnapshot(row pgx.CollectableRow) (entities.Snapshot, time.Time, error) {
	var (
		s  entities.Snapshot
		at time.Time
	)
	err := row.Scan(
		&s.EventID, &s.EventTitle, &s.EventImage, &s.Venue, &s.Campus, &s.DateTime,
		&s.StartTime, &s.EndTime, &s.OrganizerName, &at,
	)
	return s, at, err
}
