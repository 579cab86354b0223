package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/easyjatra/marketplace-api/internal/core/domain"
)

const collectionVendorRequests = "vendorRequests"

type VendorRequestRepository struct {
	col *mongo.Collection
}

func NewVendorRequestRepository(db *mongo.Database) *VendorRequestRepository {
	return &VendorRequestRepository{col: db.Collection(collectionVendorRequests)}
}

type mongoVendorRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Email       string             `bson:"email"`
	RequestedAt time.Time          `bson:"requested_at"`
}

// Insert stores a pending request. The unique index on email makes a
// duplicate submission fail deterministically even under concurrency.
func (r *VendorRequestRepository) Insert(ctx context.Context, req *domain.VendorRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoVendorRequest{Email: req.Email, RequestedAt: req.RequestedAt}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrDuplicateVendorRequest
		}
		return "", fmt.Errorf("insert vendor request: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *VendorRequestRepository) List(ctx context.Context) ([]domain.VendorRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list vendor requests: %w", err)
	}
	defer cur.Close(ctx)

	requests := make([]domain.VendorRequest, 0)
	for cur.Next(ctx) {
		var req mongoVendorRequest
		if err := cur.Decode(&req); err != nil {
			return nil, fmt.Errorf("decode vendor request: %w", err)
		}
		requests = append(requests, domain.VendorRequest{
			ID:          req.ID.Hex(),
			Email:       req.Email,
			RequestedAt: req.RequestedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate vendor requests: %w", err)
	}
	return requests, nil
}

// DeleteByEmail removes a pending request. Deleting an absent request is
// not an error; approval must succeed whether or not a request exists.
func (r *VendorRequestRepository) DeleteByEmail(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return fmt.Errorf("delete vendor request: %w", err)
	}
	return nil
}

// EnsureIndexes enforces at most one pending request per email.
func (r *VendorRequestRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
