// internal/app/system/identity/provider.go
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailExists is returned when an account already holds the email.
	ErrEmailExists = errors.New("identity: email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("identity: invalid credentials")
)

const bcryptCost = 12

// credential is the stored login record for one admin account.
// The _id doubles as the admin directory record ID.
type credential struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash []byte    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
}

// Provider issues and verifies admin credentials. It owns the
// admin_credentials collection; the admin directory (roles, display
// names) lives in a separate store keyed by the same subject ID.
type Provider struct {
	c        *mongo.Collection
	secret   []byte
	tokenTTL time.Duration
}

// NewProvider creates a Provider bound to the admin_credentials collection.
func NewProvider(db *mongo.Database, secret []byte, tokenTTL time.Duration) *Provider {
	return &Provider{
		c:        db.Collection("admin_credentials"),
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// EnsureIndexes creates the unique email index for credentials.
func (p *Provider) EnsureIndexes(ctx context.Context) error {
	_, err := p.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_credential_email").SetUnique(true),
	})
	return err
}

// CreateAccount registers a new credential and returns the subject ID
// for the directory record. Email must already be normalized.
func (p *Provider) CreateAccount(ctx context.Context, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	cred := credential{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := p.c.InsertOne(ctx, cred); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrEmailExists
		}
		return "", err
	}
	return cred.ID, nil
}

// Authenticate checks a password against the stored hash and, on
// success, returns the subject ID. Unknown email and wrong password
// are indistinguishable to the caller.
func (p *Provider) Authenticate(ctx context.Context, email, password string) (string, error) {
	var cred credential
	err := p.c.FindOne(ctx, bson.M{"email": email}).Decode(&cred)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return cred.ID, nil
}

// IssueToken signs a bearer token for an authenticated subject. Name
// comes from the directory record, not the credential.
func (p *Provider) IssueToken(subject, email, name string) (string, error) {
	return NewToken(p.secret, subject, email, name, p.tokenTTL)
}

// Verify validates a bearer token and returns its claims.
func (p *Provider) Verify(tokenString string) (*Claims, error) {
	return ParseToken(p.secret, tokenString)
}
