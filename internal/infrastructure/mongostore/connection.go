package mongostore

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	colEvents        = "events"
	colLikes         = "event_likes"
	colAttendees     = "event_attendees"
	colComments      = "event_comments"
	colRegistrations = "user_registrations"
	colFavourites    = "user_favourites"
	colProfiles      = "profiles"
)

// Connect opens a client and checks the primary is reachable. Interaction
// writes use multi-document transactions, so the server must run as a
// replica set.
func Connect(ctx context.Context, uri string, log zerolog.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	log.Info().Msg("mongo connected")
	return client, nil
}

// EnsureIndexes creates the indexes the repositories rely on. Unique keys
// on likes and favourites back the one-marker-per-user rule.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		colEvents: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
			{Keys: bson.D{{Key: "createdBy", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		colLikes: {
			{Keys: bson.D{{Key: "eventId", Value: 1}, {Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		colAttendees: {
			{Keys: bson.D{{Key: "eventId", Value: 1}}},
		},
		colComments: {
			{Keys: bson.D{{Key: "eventId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		colRegistrations: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "eventId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		colFavourites: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "eventId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for col, models := range specs {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", col, err)
		}
	}
	return nil
}
