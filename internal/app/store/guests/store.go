// internal/app/store/guests/store.go
package gueststore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/brightevents/gatepass/internal/app/system/normalize"
	"github.com/brightevents/gatepass/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no guest matches the lookup.
	ErrNotFound = errors.New("guest not found")

	// ErrDuplicateEmail is returned when an insert collides with the unique
	// email index — either the pre-insert point query saw the email, or a
	// concurrent registration won the race and the index rejected ours.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrDuplicateCode is returned when an insert collides with the unique
	// access_code index. Rare: it means two concurrent registrations
	// resolved the same candidate code.
	ErrDuplicateCode = errors.New("access code already allocated")

	// ErrAlreadyCheckedIn is returned by ConfirmCheckIn when the guest's
	// one-way transition has already happened.
	ErrAlreadyCheckedIn = errors.New("guest already checked in")
)

// Store manages guest records.
type Store struct {
	c *mongo.Collection
}

// New creates a guest Store bound to the guests collection.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("guests")}
}

// EnsureIndexes creates the indexes the registration and check-in paths
// depend on. The unique indexes on email and access_code are what turn the
// read-then-write uniqueness checks into enforced invariants.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "access_code", Value: 1}},
			Options: options.Index().SetName("uniq_access_code").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "registered_at", Value: -1}},
			Options: options.Index().SetName("idx_registered_at"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Insert persists a new guest. The email must already be normalized
// lowercase. Folded name fields for case-insensitive search are set here so
// callers cannot forget them. Duplicate-key errors from the unique indexes
// are mapped to ErrDuplicateEmail / ErrDuplicateCode.
func (s *Store) Insert(ctx context.Context, g *models.Guest) error {
	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}
	g.Email = normalize.Email(g.Email)
	g.FirstNameCI = text.Fold(g.FirstName)
	g.LastNameCI = text.Fold(g.LastName)
	if g.RegisteredAt.IsZero() {
		g.RegisteredAt = time.Now().UTC()
	}

	_, err := s.c.InsertOne(ctx, g)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		if strings.Contains(err.Error(), "uniq_access_code") {
			return ErrDuplicateCode
		}
		return ErrDuplicateEmail
	}
	return err
}

// GetByID fetches a single guest.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Guest, error) {
	var g models.Guest
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Guest{}, ErrNotFound
	}
	return g, err
}

// EmailExists reports whether a guest with the given (normalized) email is
// already registered. Exact-match point query against the unique index.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CodeTaken reports whether an access code is already allocated. This is the
// membership check the uniqueness resolver retries against.
func (s *Store) CodeTaken(ctx context.Context, code string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"access_code": code},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetByAccessCode fetches the guest holding the given code. Codes are
// unique, so at most one document can match.
func (s *Store) GetByAccessCode(ctx context.Context, code string) (models.Guest, error) {
	var g models.Guest
	err := s.c.FindOne(ctx, bson.M{"access_code": code}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Guest{}, ErrNotFound
	}
	return g, err
}

// List returns all guests, most recently registered first.
func (s *Store) List(ctx context.Context) ([]models.Guest, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "registered_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var guests []models.Guest
	if err := cur.All(ctx, &guests); err != nil {
		return nil, err
	}
	return guests, nil
}

// SearchByName returns guests whose first or last name contains query as a
// case-insensitive substring.
//
// The store supports exact and prefix field queries but not case-insensitive
// substring search, so this walks the whole collection and filters on the
// folded name fields. Fine at event scale (hundreds to low thousands of
// guests); revisit if the portal ever serves much larger events.
func (s *Store) SearchByName(ctx context.Context, query string) ([]models.Guest, error) {
	q := text.Fold(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var matches []models.Guest
	for cur.Next(ctx) {
		var g models.Guest
		if err := cur.Decode(&g); err != nil {
			return nil, err
		}
		if strings.Contains(g.FirstNameCI, q) || strings.Contains(g.LastNameCI, q) {
			matches = append(matches, g)
		}
	}
	return matches, cur.Err()
}

// ConfirmCheckIn performs the one-way check-in transition.
//
// The update is conditional on checked_in being false, so the state change
// itself cannot be applied twice: of two concurrent confirmations exactly
// one matches the document. On success the updated guest is returned. If
// the guest exists but was already checked in, the current record is
// returned alongside ErrAlreadyCheckedIn so callers can render it.
func (s *Store) ConfirmCheckIn(ctx context.Context, id primitive.ObjectID, actor string, at time.Time) (models.Guest, error) {
	var g models.Guest
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "checked_in": false},
		bson.M{"$set": bson.M{
			"checked_in":    true,
			"checked_in_at": at,
			"checked_in_by": actor,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&g)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.Guest{}, err
	}

	// No document matched: either the guest is absent or already checked in.
	current, getErr := s.GetByID(ctx, id)
	if getErr != nil {
		return models.Guest{}, getErr
	}
	return current, ErrAlreadyCheckedIn
}
