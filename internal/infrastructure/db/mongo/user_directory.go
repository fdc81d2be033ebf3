package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/vetcare/central/internal/core/domain"
)

const usersCollection = "users"

// UserDirectory verifies credentials against the users collection.
type UserDirectory struct {
	coll *mongo.Collection
	log  zerolog.Logger
}

func NewUserDirectory(db *mongo.Database, log zerolog.Logger) *UserDirectory {
	return &UserDirectory{
		coll: db.Collection(usersCollection),
		log:  log.With().Str("component", "user_directory").Logger(),
	}
}

// userRecord is the stored shape of a user. Every field except ImageURL is
// required before a record may become an identity.
type userRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	ImageURL     string             `bson:"image_url,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

// toIdentity maps a record into a validated identity.
func (r userRecord) toIdentity() (*domain.Identity, error) {
	if r.ID.IsZero() || r.PasswordHash == "" {
		return nil, fmt.Errorf("%w: record missing id or password hash", domain.ErrMalformedIdentity)
	}
	id := &domain.Identity{
		ID:       r.ID.Hex(),
		Name:     r.Name,
		Email:    r.Email,
		Role:     domain.Role(r.Role),
		ImageURL: r.ImageURL,
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return id, nil
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate looks the user up by email and compares the bcrypt hash.
func (d *UserDirectory) Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec userRecord
	err := d.coll.FindOne(ctx, bson.M{"email": normaliseEmail(creds.Email)}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find user: %w", domain.ErrDirectoryUnavailable, err)
	}

	id, err := rec.toIdentity()
	if err != nil {
		d.log.Error().Err(err).Str("user_id", rec.ID.Hex()).Msg("rejecting malformed user record")
		return nil, fmt.Errorf("%w: %w", domain.ErrDirectoryUnavailable, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(creds.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return id, nil
}

// NewUser is the input for Create.
type NewUser struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	ImageURL string
}

// Create hashes the password and inserts a user, returning its identity.
func (d *UserDirectory) Create(ctx context.Context, u NewUser) (*domain.Identity, error) {
	if !u.Role.Valid() {
		return nil, domain.ErrUnknownRole
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC().Unix()
	rec := userRecord{
		ID:           primitive.NewObjectID(),
		Name:         u.Name,
		Email:        normaliseEmail(u.Email),
		PasswordHash: string(hash),
		Role:         string(u.Role),
		ImageURL:     u.ImageURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	id, err := rec.toIdentity()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := d.coll.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

// EnsureIndexes creates the unique email index on the users collection.
func (d *UserDirectory) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := d.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
