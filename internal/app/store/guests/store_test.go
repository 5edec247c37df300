package gueststore

import (
	"errors"
	"testing"
	"time"

	"github.com/brightevents/gatepass/internal/domain/models"
	"github.com/brightevents/gatepass/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newGuest(first, last, email, code string) models.Guest {
	return models.Guest{
		FirstName:    first,
		LastName:     last,
		Email:        email,
		Organization: "Test Org",
		JobTitle:     "Tester",
		GuestType:    models.GuestTypeVisitor,
		AccessCode:   code,
	}
}

func TestInsert_SetsDerivedFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	g := newGuest("Ada", "Lovelace", "ADA@Example.COM", "AB23CD")
	if err := store.Insert(ctx, &g); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if g.ID.IsZero() {
		t.Error("expected ID to be assigned")
	}
	if g.Email != "ada@example.com" {
		t.Errorf("expected normalized email, got %q", g.Email)
	}
	if g.FirstNameCI != "ada" || g.LastNameCI != "lovelace" {
		t.Errorf("expected folded name fields, got %q %q", g.FirstNameCI, g.LastNameCI)
	}
	if g.RegisteredAt.IsZero() {
		t.Error("expected registered_at to be set")
	}
	if g.CheckedIn {
		t.Error("new guest must not be checked in")
	}
}

func TestInsert_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	first := newGuest("Ada", "Lovelace", "ada@example.com", "AB23CD")
	if err := store.Insert(ctx, &first); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	// Same email in different case must hit the unique index.
	second := newGuest("Other", "Person", "Ada@Example.com", "XY45ZW")
	err := store.Insert(ctx, &second)
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestInsert_DuplicateAccessCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	first := newGuest("Ada", "Lovelace", "ada@example.com", "AB23CD")
	if err := store.Insert(ctx, &first); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	second := newGuest("Grace", "Hopper", "grace@example.com", "AB23CD")
	err := store.Insert(ctx, &second)
	if !errors.Is(err, ErrDuplicateCode) {
		t.Fatalf("expected ErrDuplicateCode, got %v", err)
	}
}

func TestEmailExists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	g := newGuest("Ada", "Lovelace", "ada@example.com", "AB23CD")
	if err := store.Insert(ctx, &g); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	exists, err := store.EmailExists(ctx, "ADA@example.com")
	if err != nil {
		t.Fatalf("EmailExists failed: %v", err)
	}
	if !exists {
		t.Error("expected email to exist regardless of case")
	}

	exists, err = store.EmailExists(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("EmailExists failed: %v", err)
	}
	if exists {
		t.Error("expected unknown email to not exist")
	}
}

func TestCodeTaken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	g := newGuest("Ada", "Lovelace", "ada@example.com", "AB23CD")
	if err := store.Insert(ctx, &g); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	taken, err := store.CodeTaken(ctx, "AB23CD")
	if err != nil {
		t.Fatalf("CodeTaken failed: %v", err)
	}
	if !taken {
		t.Error("expected allocated code to be taken")
	}

	taken, err = store.CodeTaken(ctx, "XY45ZW")
	if err != nil {
		t.Fatalf("CodeTaken failed: %v", err)
	}
	if taken {
		t.Error("expected free code to not be taken")
	}
}

func TestGetByAccessCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	g := newGuest("Ada", "Lovelace", "ada@example.com", "AB23CD")
	if err := store.Insert(ctx, &g); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByAccessCode(ctx, "AB23CD")
	if err != nil {
		t.Fatalf("GetByAccessCode failed: %v", err)
	}
	if got.ID != g.ID {
		t.Errorf("expected guest %s, got %s", g.ID.Hex(), got.ID.Hex())
	}

	_, err = store.GetByAccessCode(ctx, "XY45ZW")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestList_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	older := newGuest("Ada", "Lovelace", "ada@example.com", "AB23CD")
	older.RegisteredAt = time.Now().UTC().Add(-time.Hour)
	if err := store.Insert(ctx, &older); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	newer := newGuest("Grace", "Hopper", "grace@example.com", "XY45ZW")
	if err := store.Insert(ctx, &newer); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	guests, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(guests) != 2 {
		t.Fatalf("expected 2 guests, got %d", len(guests))
	}
	if guests[0].ID != newer.ID {
		t.Error("expected most recent registration first")
	}
}

func TestSearchByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	ada := newGuest("Ada", "Lovelace", "ada@example.com", "AB23CD")
	grace := newGuest("Grace", "Hopper", "grace@example.com", "XY45ZW")
	for _, g := range []*models.Guest{&ada, &grace} {
		if err := store.Insert(ctx, g); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	// Case-insensitive substring on either name part.
	results, err := store.SearchByName(ctx, "LOVE")
	if err != nil {
		t.Fatalf("SearchByName failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != ada.ID {
		t.Errorf("expected Ada for substring LOVE, got %d results", len(results))
	}

	results, err = store.SearchByName(ctx, "nobody")
	if err != nil {
		t.Fatalf("SearchByName failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}

	results, err = store.SearchByName(ctx, "   ")
	if err != nil {
		t.Fatalf("SearchByName failed: %v", err)
	}
	if results != nil {
		t.Error("expected nil for blank query")
	}
}

func TestConfirmCheckIn_Transition(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	g := newGuest("Ada", "Lovelace", "ada@example.com", "AB23CD")
	if err := store.Insert(ctx, &g); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	at := time.Now().UTC().Truncate(time.Millisecond)
	got, err := store.ConfirmCheckIn(ctx, g.ID, "desk@test.com", at)
	if err != nil {
		t.Fatalf("ConfirmCheckIn failed: %v", err)
	}
	if !got.CheckedIn {
		t.Error("expected guest to be checked in")
	}
	if got.CheckedInAt == nil || !got.CheckedInAt.Equal(at) {
		t.Errorf("expected checked_in_at %v, got %v", at, got.CheckedInAt)
	}
	if got.CheckedInBy != "desk@test.com" {
		t.Errorf("expected actor desk@test.com, got %q", got.CheckedInBy)
	}
}

func TestConfirmCheckIn_SecondAttemptConflicts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	g := newGuest("Ada", "Lovelace", "ada@example.com", "AB23CD")
	if err := store.Insert(ctx, &g); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	first := time.Now().UTC().Truncate(time.Millisecond)
	if _, err := store.ConfirmCheckIn(ctx, g.ID, "first@test.com", first); err != nil {
		t.Fatalf("first ConfirmCheckIn failed: %v", err)
	}

	current, err := store.ConfirmCheckIn(ctx, g.ID, "second@test.com", time.Now().UTC())
	if !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("expected ErrAlreadyCheckedIn, got %v", err)
	}

	// The returned record must carry the winning transition untouched.
	if current.CheckedInBy != "first@test.com" {
		t.Errorf("expected winning actor first@test.com, got %q", current.CheckedInBy)
	}
	if current.CheckedInAt == nil || !current.CheckedInAt.Equal(first) {
		t.Errorf("expected original checked_in_at %v, got %v", first, current.CheckedInAt)
	}
}

func TestConfirmCheckIn_UnknownGuest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	g := newGuest("Ada", "Lovelace", "ada@example.com", "AB23CD")
	if err := store.Insert(ctx, &g); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	_, err := store.ConfirmCheckIn(ctx, primitive.NewObjectID(), "desk@test.com", time.Now().UTC())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
