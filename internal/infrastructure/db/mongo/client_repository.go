package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/melxagency/rmoneyok/internal/core/domain"
)

const collectionClients = "clientes"

// ClientRepository persists customer accounts.
type ClientRepository struct {
	coll *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{coll: db.Collection(collectionClients)}
}

type mongoClient struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty"`
	FullName              string             `bson:"fullname"`
	Email                 string             `bson:"email"`
	Contact               string             `bson:"contacto"`
	Username              string             `bson:"username"`
	Password              string             `bson:"password"`
	EmailVerified         bool               `bson:"email_verified"`
	VerificationToken     string             `bson:"verification_token,omitempty"`
	VerificationExpiresAt *time.Time         `bson:"verification_expires_at,omitempty"`
	CreatedAt             int64              `bson:"created_at"`
}

func (c mongoClient) toDomain() *domain.Client {
	client := &domain.Client{
		ID:                c.ID.Hex(),
		FullName:          c.FullName,
		Email:             c.Email,
		Contact:           c.Contact,
		Username:          c.Username,
		PasswordHash:      c.Password,
		EmailVerified:     c.EmailVerified,
		VerificationToken: c.VerificationToken,
		CreatedAt:         unixToTime(c.CreatedAt),
	}
	if c.VerificationExpiresAt != nil {
		client.VerificationExpiresAt = c.VerificationExpiresAt.UTC()
	}
	return client
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	expiresAt := client.VerificationExpiresAt
	doc := mongoClient{
		FullName:              client.FullName,
		Email:                 client.Email,
		Contact:               client.Contact,
		Username:              client.Username,
		Password:              client.PasswordHash,
		EmailVerified:         client.EmailVerified,
		VerificationToken:     client.VerificationToken,
		VerificationExpiresAt: &expiresAt,
		CreatedAt:             client.CreatedAt.Unix(),
	}

	_, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrClientExists
		}
		return nil, fmt.Errorf("insert client: %w", err)
	}

	return r.FindByUsername(ctx, client.Username)
}

func (r *ClientRepository) FindByUsername(ctx context.Context, username string) (*domain.Client, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *ClientRepository) FindByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *ClientRepository) FindByVerificationToken(ctx context.Context, token string) (*domain.Client, error) {
	return r.findOne(ctx, bson.M{"verification_token": token})
}

func (r *ClientRepository) findOne(ctx context.Context, filter bson.M) (*domain.Client, error) {
	var mc mongoClient
	if err := r.coll.FindOne(ctx, filter).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return mc.toDomain(), nil
}

// MarkVerified flips the verified flag and clears the token fields, making
// the token single use.
func (r *ClientRepository) MarkVerified(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrClientNotFound
	}

	update := bson.M{
		"$set":   bson.M{"email_verified": true},
		"$unset": bson.M{"verification_token": "", "verification_expires_at": ""},
	}
	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *ClientRepository) SetVerificationToken(ctx context.Context, id, token string, expiresAt time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrClientNotFound
	}

	update := bson.M{"$set": bson.M{
		"verification_token":      token,
		"verification_expires_at": expiresAt,
	}}
	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("set verification token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *ClientRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrClientNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"password": passwordHash}})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// EnsureIndexes creates unique indexes on username and email; the store owns
// uniqueness, duplicate-key errors surface as ErrClientExists.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "verification_token", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
