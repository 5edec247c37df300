// internal/app/store/activity/store.go
package activity

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Entry types. One entry is appended per significant state-changing
// operation, in program order after the state change it describes.
const (
	TypeRegistration = "registration"
	TypeCheckIn      = "check_in"
	TypeAdminCreated = "admin_created"
	TypeAdminLogin   = "admin_login"
)

// PerformedBySystem is the actor label for unauthenticated self-service
// operations (guest registration).
const PerformedBySystem = "System"

// Entry is one activity log record. The log is append-only: entries are
// never mutated or deleted.
type Entry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type        string             `bson:"type" json:"type"`
	PerformedBy string             `bson:"performed_by" json:"performedBy"`
	TargetGuest string             `bson:"target_guest,omitempty" json:"targetGuest,omitempty"`
	TargetAdmin string             `bson:"target_admin,omitempty" json:"targetAdmin,omitempty"`
	Details     string             `bson:"details" json:"details"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}

// QueryFilter narrows an activity query.
type QueryFilter struct {
	Type  string // one entry type, or "" for all
	Limit int64  // max entries; defaults to 100
}

// Store manages activity log entries.
type Store struct {
	c *mongo.Collection
}

// New creates an activity Store bound to the activity_logs collection.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("activity_logs")}
}

// EnsureIndexes creates indexes for recency and per-type queries.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_activity_ts"),
		},
		{
			Keys:    bson.D{{Key: "type", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_activity_type_ts"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Append records a new entry. There is no update or delete counterpart.
func (s *Store) Append(ctx context.Context, e Entry) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, e)
	return err
}

// Query returns entries newest first, optionally filtered to one type and
// capped at filter.Limit (default 100).
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Entry, error) {
	q := bson.M{}
	if filter.Type != "" {
		q["type"] = filter.Type
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []Entry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
