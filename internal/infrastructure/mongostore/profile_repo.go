package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusevents/internal/domain"
	"campusevents/internal/domain/entities"
	"campusevents/internal/ports/output"
)

var _ output.ProfileRepository = (*ProfileRepository)(nil)

type ProfileRepository struct {
	db  *mongo.Database
	now func() time.Time
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{db: db, now: time.Now}
}

func (r *ProfileRepository) FindByID(ctx context.Context, uid string) (*entities.Profile, error) {
	var doc profileDoc
	err := r.db.Collection(colProfiles).FindOne(ctx, bson.M{"_id": uid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, domain.Repository("get profile", err)
	}
	p := doc.toDomain()
	return &p, nil
}

// Upsert writes the profile, keeping the original createdAt.
func (r *ProfileRepository) Upsert(ctx context.Context, p *entities.Profile) error {
	now := r.now().UTC()
	doc := profileToDoc(p)
	doc.UpdatedAt = now

	raw, err := bson.Marshal(doc)
	if err != nil {
		return domain.Repository("upsert profile", err)
	}
	var set bson.M
	if err := bson.Unmarshal(raw, &set); err != nil {
		return domain.Repository("upsert profile", err)
	}
	delete(set, "_id")
	delete(set, "createdAt")

	var stored profileDoc
	err = r.db.Collection(colProfiles).FindOneAndUpdate(ctx,
		bson.M{"_id": p.UID},
		bson.M{"$set": set, "$setOnInsert": bson.M{"createdAt": now}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&stored)
	if err != nil {
		return domain.Repository("upsert profile", err)
	}
	p.CreatedAt = stored.CreatedAt
	p.UpdatedAt = stored.UpdatedAt
	return nil
}
