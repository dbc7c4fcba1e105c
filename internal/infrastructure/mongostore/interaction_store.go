package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusevents/internal/domain"
	"campusevents/internal/domain/entities"
	"campusevents/internal/ports/output"
)

var _ output.InteractionStore = (*InteractionStore)(nil)

// InteractionStore runs every interaction inside a session transaction so a
// marker and its counter commit or roll back together.
type InteractionStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewInteractionStore(client *mongo.Client, db *mongo.Database) *InteractionStore {
	return &InteractionStore{client: client, db: db}
}

func (s *InteractionStore) Apply(ctx context.Context, in entities.Interaction) (entities.InteractionResult, error) {
	sess, err := s.client.StartSession()
	if err != nil {
		return entities.InteractionResult{}, domain.Repository("start session", err)
	}
	defer sess.EndSession(ctx)

	out, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		err := s.db.Collection(colEvents).FindOne(sc, bson.M{"_id": in.EventID},
			options.FindOne().SetProjection(bson.M{"_id": 1}),
		).Err()
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("find event: %w", err)
		}

		switch in.Kind {
		case entities.InteractionLike:
			return s.applyLike(sc, in)
		case entities.InteractionSave:
			return s.applySave(sc, in)
		case entities.InteractionRegister:
			return s.applyRegister(sc, in)
		case entities.InteractionComment:
			return s.applyComment(sc, in)
		}
		return nil, domain.Validation("unknown interaction %q", in.Kind)
	})
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) || errors.Is(err, domain.ErrValidation) {
			return entities.InteractionResult{}, err
		}
		return entities.InteractionResult{}, domain.Repository("apply "+string(in.Kind), err)
	}
	return out.(entities.InteractionResult), nil
}

// bump moves a counter by delta and returns the counters after the write.
// Decrements go through an aggregation pipeline so the value stops at zero.
func (s *InteractionStore) bump(sc mongo.SessionContext, eventID, field string, delta int) (counterDoc, error) {
	var update any = bson.M{"$inc": bson.M{field: delta}}
	if delta < 0 {
		update = mongo.Pipeline{
			{{Key: "$set", Value: bson.D{{Key: field, Value: bson.D{{Key: "$max", Value: bson.A{
				0, bson.D{{Key: "$add", Value: bson.A{"$" + field, delta}}},
			}}}}}}},
		}
	}
	var c counterDoc
	err := s.db.Collection(colEvents).FindOneAndUpdate(sc, bson.M{"_id": eventID}, update,
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.M{"likesCount": 1, "attendeesCount": 1, "commentsCount": 1}),
	).Decode(&c)
	if err != nil {
		return counterDoc{}, fmt.Errorf("update %s: %w", field, err)
	}
	return c, nil
}

func (s *InteractionStore) applyLike(sc mongo.SessionContext, in entities.Interaction) (entities.InteractionResult, error) {
	filter := bson.M{"eventId": in.EventID, "userId": in.UserID}
	res, err := s.db.Collection(colLikes).DeleteOne(sc, filter)
	if err != nil {
		return entities.InteractionResult{}, fmt.Errorf("delete like: %w", err)
	}
	if res.DeletedCount > 0 {
		c, err := s.bump(sc, in.EventID, "likesCount", -1)
		return entities.InteractionResult{Active: false, Count: c.LikesCount}, err
	}
	if _, err := s.db.Collection(colLikes).InsertOne(sc, likeDoc{
		EventID:   in.EventID,
		UserID:    in.UserID,
		CreatedAt: in.At,
	}); err != nil {
		return entities.InteractionResult{}, fmt.Errorf("insert like: %w", err)
	}
	c, err := s.bump(sc, in.EventID, "likesCount", 1)
	return entities.InteractionResult{Active: true, Count: c.LikesCount}, err
}

func (s *InteractionStore) applySave(sc mongo.SessionContext, in entities.Interaction) (entities.InteractionResult, error) {
	res, err := s.db.Collection(colFavourites).DeleteOne(sc, bson.M{"userId": in.UserID, "eventId": in.EventID})
	if err != nil {
		return entities.InteractionResult{}, fmt.Errorf("delete favourite: %w", err)
	}
	if res.DeletedCount > 0 {
		return entities.InteractionResult{Active: false}, nil
	}
	if _, err := s.db.Collection(colFavourites).InsertOne(sc, snapshotToDoc(in.UserID, in.Snapshot, in.At)); err != nil {
		return entities.InteractionResult{}, fmt.Errorf("insert favourite: %w", err)
	}
	return entities.InteractionResult{Active: true}, nil
}

func (s *InteractionStore) applyRegister(sc mongo.SessionContext, in entities.Interaction) (entities.InteractionResult, error) {
	if _, err := s.db.Collection(colAttendees).InsertOne(sc, attendeeDoc{
		ID:       uuid.NewString(),
		EventID:  in.EventID,
		UserID:   in.UserID,
		JoinedAt: in.At,
	}); err != nil {
		return entities.InteractionResult{}, fmt.Errorf("insert attendee: %w", err)
	}
	c, err := s.bump(sc, in.EventID, "attendeesCount", 1)
	if err != nil {
		return entities.InteractionResult{}, err
	}
	_, err = s.db.Collection(colRegistrations).ReplaceOne(sc,
		bson.M{"userId": in.UserID, "eventId": in.EventID},
		snapshotToDoc(in.UserID, in.Snapshot, in.At),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return entities.InteractionResult{}, fmt.Errorf("upsert registration: %w", err)
	}
	return entities.InteractionResult{Active: true, Count: c.AttendeesCount}, nil
}

func (s *InteractionStore) applyComment(sc mongo.SessionContext, in entities.Interaction) (entities.InteractionResult, error) {
	doc := commentDoc{
		ID:        uuid.NewString(),
		EventID:   in.EventID,
		UserID:    in.UserID,
		Text:      in.Text,
		CreatedAt: in.At,
	}
	if _, err := s.db.Collection(colComments).InsertOne(sc, doc); err != nil {
		return entities.InteractionResult{}, fmt.Errorf("insert comment: %w", err)
	}
	c, err := s.bump(sc, in.EventID, "commentsCount", 1)
	if err != nil {
		return entities.InteractionResult{}, err
	}
	comment := doc.toDomain()
	return entities.InteractionResult{Active: true, Count: c.CommentsCount, Comment: &comment}, nil
}

func (d commentDoc) toDomain() entities.Comment {
	return entities.Comment{ID: d.ID, EventID: d.EventID, UserID: d.UserID, Text: d.Text, CreatedAt: d.CreatedAt}
}

func (s *InteractionStore) Status(ctx context.Context, eventID, userID string) (entities.InteractionStatus, error) {
	liked, err := s.db.Collection(colLikes).CountDocuments(ctx,
		bson.M{"eventId": eventID, "userId": userID}, options.Count().SetLimit(1))
	if err != nil {
		return entities.InteractionStatus{}, domain.Repository("get like status", err)
	}
	saved, err := s.db.Collection(colFavourites).CountDocuments(ctx,
		bson.M{"eventId": eventID, "userId": userID}, options.Count().SetLimit(1))
	if err != nil {
		return entities.InteractionStatus{}, domain.Repository("get save status", err)
	}
	return entities.InteractionStatus{Liked: liked > 0, Saved: saved > 0}, nil
}

func (s *InteractionStore) Comments(ctx context.Context, eventID string) ([]entities.Comment, error) {
	cur, err := s.db.Collection(colComments).Find(ctx, bson.M{"eventId": eventID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, domain.Repository("list comments", err)
	}
	var docs []commentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.Repository("list comments", err)
	}
	out := make([]entities.Comment, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func (s *InteractionStore) snapshots(ctx context.Context, col, userID string) ([]snapshotDoc, error) {
	cur, err := s.db.Collection(col).Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "eventId", Value: -1}}))
	if err != nil {
		return nil, domain.Repository("list "+col, err)
	}
	var docs []snapshotDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.Repository("list "+col, err)
	}
	return docs, nil
}

func (s *InteractionStore) Registrations(ctx context.Context, userID string) ([]entities.Registration, error) {
	docs, err := s.snapshots(ctx, colRegistrations, userID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Registration, len(docs))
	for i, d := range docs {
		out[i] = entities.Registration{UserID: d.UserID, Snapshot: d.snapshot(), CreatedAt: d.CreatedAt}
	}
	return out, nil
}

func (s *InteractionStore) SavedPosts(ctx context.Context, userID string) ([]entities.SavedPost, error) {
	docs, err := s.snapshots(ctx, colFavourites, userID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.SavedPost, len(docs))
	for i, d := range docs {
		out[i] = entities.SavedPost{UserID: d.UserID, Snapshot: d.snapshot(), CreatedAt: d.CreatedAt}
	}
	return out, nil
}
