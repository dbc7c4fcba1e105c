package mongostore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusevents/internal/domain"
	"campusevents/internal/domain/entities"
	"campusevents/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	db  *mongo.Database
	loc *time.Location
	now func() time.Time
}

func NewEventRepository(db *mongo.Database, loc *time.Location) *EventRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &EventRepository{db: db, loc: loc, now: time.Now}
}

func (r *EventRepository) List(ctx context.Context) ([]entities.Event, error) {
	return r.ListWhere(ctx, output.EventQuery{})
}

func (r *EventRepository) ListWhere(ctx context.Context, q output.EventQuery) ([]entities.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.db.Collection(colEvents).Find(ctx, eventFilter(q), opts)
	if err != nil {
		return nil, domain.Repository("list events", err)
	}
	var docs []eventDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.Repository("list events", err)
	}
	events := make([]entities.Event, len(docs))
	for i := range docs {
		events[i] = docs[i].toDomain()
		events[i].Normalize(r.loc)
	}
	return events, nil
}

func eventFilter(q output.EventQuery) bson.M {
	filter := bson.M{}
	if q.Category != "" {
		filter["category"] = string(q.Category)
	}
	if q.Type != "" {
		filter["eventType"] = string(q.Type)
	}
	if q.Status != "" {
		filter["status"] = string(q.Status)
	}
	if q.CreatedBy != "" {
		filter["createdBy"] = q.CreatedBy
	}
	return filter
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	var doc eventDoc
	err := r.db.Collection(colEvents).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, domain.Repository("get event by id", err)
	}
	e := doc.toDomain()
	e.Normalize(r.loc)
	return &e, nil
}

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	now := r.now().UTC()
	event.ID = uuid.NewString()
	event.CreatedAt = now
	event.UpdatedAt = now
	event.Counters = entities.Counters{}
	event.ApprovalStatus = entities.ApprovalPending

	if _, err := r.db.Collection(colEvents).InsertOne(ctx, eventToDoc(event)); err != nil {
		return domain.Repository("create event", err)
	}
	return nil
}

// Update replaces the editable fields with $set. Ownership, counters,
// approval and createdAt are left out of the update document.
func (r *EventRepository) Update(ctx context.Context, event *entities.Event) error {
	doc := eventToDoc(event)
	raw, err := bson.Marshal(doc)
	if err != nil {
		return domain.Repository("update event", err)
	}
	var set bson.M
	if err := bson.Unmarshal(raw, &set); err != nil {
		return domain.Repository("update event", err)
	}
	for _, k := range []string{
		"_id", "createdBy", "organizerId", "createdAt", "approvalStatus",
		"likesCount", "attendeesCount", "commentsCount", "sharesCount",
	} {
		delete(set, k)
	}
	set["updatedAt"] = r.now().UTC()

	// Optional fields the edit cleared must be removed, not left stale.
	unset := bson.M{}
	for _, k := range []string{
		"category", "eventType", "locationLink", "posterURL", "brochureLink",
		"eventDate", "startTime", "endTime", "duration", "dateTime", "startDate", "endDate",
		"registrationDeadline", "registrationLink", "maxParticipants",
		"organizerName", "organizerDepartment", "organizerEmail", "status",
	} {
		if _, ok := set[k]; !ok {
			unset[k] = ""
		}
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var stored eventDoc
	err = r.db.Collection(colEvents).FindOneAndUpdate(ctx, bson.M{"_id": event.ID}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&stored)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrEventNotFound
	}
	if err != nil {
		return domain.Repository("update event", err)
	}
	event.UpdatedAt = stored.UpdatedAt
	event.Counters = stored.toDomain().Counters
	return nil
}

// Delete removes the event and its per-event subcollections. Per-user
// registration and favourite entries keep their snapshot.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Collection(colEvents).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return domain.Repository("delete event", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}
	for _, col := range []string{colLikes, colAttendees, colComments} {
		if _, err := r.db.Collection(col).DeleteMany(ctx, bson.M{"eventId": id}); err != nil {
			return domain.Repository("delete event "+col, err)
		}
	}
	return nil
}
