package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"worklane/config"
	"worklane/models"
)

// DB bundles the Mongo client with the collection handles the handlers
// work against. Constructed once in main and passed by reference.
type DB struct {
	Client *mongo.Client

	Users         *mongo.Collection
	Jobs          *mongo.Collection
	Projects      *mongo.Collection
	Applications  *mongo.Collection
	Proposals     *mongo.Collection
	Notifications *mongo.Collection
}

func Connect(ctx context.Context, cfg *config.Config) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	mdb := client.Database(cfg.DBName)
	return &DB{
		Client:        client,
		Users:         mdb.Collection("users"),
		Jobs:          mdb.Collection("jobs"),
		Projects:      mdb.Collection("projects"),
		Applications:  mdb.Collection("applications"),
		Proposals:     mdb.Collection("proposals"),
		Notifications: mdb.Collection("notifications"),
	}, nil
}

// EnsureIndexes creates the unique indexes the write paths rely on:
// one account per email, and at most one application/proposal per
// (listing, actor) pair. Concurrent double-submissions that slip past
// the existence pre-check bounce off these with a duplicate-key error.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	if _, err := d.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	if _, err := d.Applications.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "job_id", Value: 1}, {Key: "applicant_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	_, err := d.Proposals.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "freelancer_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// UserByID loads a user record by id. Role and ownership checks in the
// handlers all resolve the acting user through here.
func (d *DB) UserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := d.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (d *DB) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}
