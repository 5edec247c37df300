package identity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/brightevents/gatepass/internal/app/system/identity"
	"github.com/brightevents/gatepass/internal/testutil"
)

var testSecret = []byte("test-secret-not-for-production")

func TestNewToken_RoundTrip(t *testing.T) {
	token, err := identity.NewToken(testSecret, "subject-1", "grace@example.com", "Grace Hopper", time.Hour)
	if err != nil {
		t.Fatalf("NewToken failed: %v", err)
	}

	claims, err := identity.ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.Subject != "subject-1" {
		t.Errorf("expected subject subject-1, got %s", claims.Subject)
	}
	if claims.Email != "grace@example.com" {
		t.Errorf("expected email grace@example.com, got %s", claims.Email)
	}
	if claims.Name != "Grace Hopper" {
		t.Errorf("expected name Grace Hopper, got %s", claims.Name)
	}
	if claims.ID == "" {
		t.Error("expected a token ID to be set")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := identity.NewToken(testSecret, "subject-1", "grace@example.com", "Grace Hopper", time.Hour)
	if err != nil {
		t.Fatalf("NewToken failed: %v", err)
	}

	_, err = identity.ParseToken([]byte("some-other-secret"), token)
	if !errors.Is(err, identity.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, err := identity.NewToken(testSecret, "subject-1", "grace@example.com", "Grace Hopper", -time.Minute)
	if err != nil {
		t.Fatalf("NewToken failed: %v", err)
	}

	_, err = identity.ParseToken(testSecret, token)
	if !errors.Is(err, identity.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := identity.ParseToken(testSecret, "not-a-token")
	if !errors.Is(err, identity.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestProvider_CreateAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	provider := identity.NewProvider(db, testSecret, time.Hour)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id, err := provider.CreateAccount(ctx, "grace@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a subject ID")
	}
}

func TestProvider_CreateAccount_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	provider := identity.NewProvider(db, testSecret, time.Hour)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := provider.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	if _, err := provider.CreateAccount(ctx, "grace@example.com", "first password"); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	_, err := provider.CreateAccount(ctx, "grace@example.com", "second password")
	if !errors.Is(err, identity.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestProvider_Authenticate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	provider := identity.NewProvider(db, testSecret, time.Hour)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := provider.CreateAccount(ctx, "grace@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	id, err := provider.Authenticate(ctx, "grace@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if id != created {
		t.Errorf("expected subject %s, got %s", created, id)
	}

	token, err := provider.IssueToken(id, "grace@example.com", "Grace Hopper")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	claims, err := provider.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.Subject != created {
		t.Errorf("expected token subject %s, got %s", created, claims.Subject)
	}
}

func TestProvider_Authenticate_WrongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	provider := identity.NewProvider(db, testSecret, time.Hour)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := provider.CreateAccount(ctx, "grace@example.com", "correct horse battery"); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	_, err := provider.Authenticate(ctx, "grace@example.com", "wrong password")
	if !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestProvider_Authenticate_UnknownEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	provider := identity.NewProvider(db, testSecret, time.Hour)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := provider.Authenticate(ctx, "nobody@example.com", "whatever")
	if !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
