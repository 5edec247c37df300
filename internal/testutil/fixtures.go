package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/brightevents/gatepass/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateGuest creates a registered (not yet checked in) test guest.
func (f *Fixtures) CreateGuest(ctx context.Context, firstName, lastName, email, accessCode string) models.Guest {
	f.t.Helper()

	guest := models.Guest{
		ID:            primitive.NewObjectID(),
		FirstName:     firstName,
		FirstNameCI:   text.Fold(firstName),
		LastName:      lastName,
		LastNameCI:    text.Fold(lastName),
		Email:         email,
		Phone:         "+27115551234",
		Organization:  "Test Organization",
		JobTitle:      "Tester",
		GuestType:     models.GuestTypeVisitor,
		HowDidYouHear: "Website",
		AccessCode:    accessCode,
		RegisteredAt:  time.Now().UTC(),
	}

	_, err := f.db.Collection("guests").InsertOne(ctx, guest)
	if err != nil {
		f.t.Fatalf("failed to create test guest: %v", err)
	}

	return guest
}

// CreateCheckedInGuest creates a guest that has already been checked in.
func (f *Fixtures) CreateCheckedInGuest(ctx context.Context, firstName, lastName, email, accessCode, checkedInBy string) models.Guest {
	f.t.Helper()

	now := time.Now().UTC()
	guest := models.Guest{
		ID:            primitive.NewObjectID(),
		FirstName:     firstName,
		FirstNameCI:   text.Fold(firstName),
		LastName:      lastName,
		LastNameCI:    text.Fold(lastName),
		Email:         email,
		Phone:         "+27115551234",
		Organization:  "Test Organization",
		JobTitle:      "Tester",
		GuestType:     models.GuestTypeVisitor,
		HowDidYouHear: "Website",
		AccessCode:    accessCode,
		CheckedIn:     true,
		RegisteredAt:  now.Add(-time.Hour),
		CheckedInAt:   &now,
		CheckedInBy:   checkedInBy,
	}

	_, err := f.db.Collection("guests").InsertOne(ctx, guest)
	if err != nil {
		f.t.Fatalf("failed to create checked-in test guest: %v", err)
	}

	return guest
}

// CreateAdmin creates a test admin directory record with the given role.
func (f *Fixtures) CreateAdmin(ctx context.Context, displayName, email, role string) models.AdminUser {
	f.t.Helper()

	admin := models.AdminUser{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: displayName,
		Role:        role,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   "fixtures",
	}

	_, err := f.db.Collection("admins").InsertOne(ctx, admin)
	if err != nil {
		f.t.Fatalf("failed to create test admin: %v", err)
	}

	return admin
}
