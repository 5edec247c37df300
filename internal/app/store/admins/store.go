// internal/app/store/admins/store.go
package adminstore

import (
	"context"
	"errors"
	"time"

	"github.com/brightevents/gatepass/internal/app/system/normalize"
	"github.com/brightevents/gatepass/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no directory record matches the lookup.
var ErrNotFound = errors.New("admin not found")

// Store manages the admin directory.
type Store struct {
	c *mongo.Collection
}

// New creates an admin Store bound to the admins collection.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admins")}
}

// EnsureIndexes creates the directory indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_admin_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_admin_created_at"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Insert persists a new directory record. The _id must be the identity
// provider's subject id for the account.
func (s *Store) Insert(ctx context.Context, a *models.AdminUser) error {
	a.Email = normalize.Email(a.Email)
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, a)
	return err
}

// Get fetches a directory record by identity-provider subject id.
func (s *Store) Get(ctx context.Context, id string) (models.AdminUser, error) {
	var a models.AdminUser
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.AdminUser{}, ErrNotFound
	}
	return a, err
}

// List returns all directory records, newest first.
func (s *Store) List(ctx context.Context) ([]models.AdminUser, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var admins []models.AdminUser
	if err := cur.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// RecordLogin stamps last_login_at for the given admin. Called once per
// authenticated session bootstrap.
func (s *Store) RecordLogin(ctx context.Context, id string, at time.Time) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"last_login_at": at}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
