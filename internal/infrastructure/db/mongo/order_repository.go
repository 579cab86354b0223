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

	"github.com/easyjatra/marketplace-api/internal/core/domain"
)

const collectionOrders = "orders"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

type mongoOrder struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	TicketID      string             `bson:"ticketId"`
	TransactionID string             `bson:"transactionId"`
	Customer      string             `bson:"customer"`
	Status        string             `bson:"status"`
	Vendor        mongoVendor        `bson:"vendor"`
	Name          string             `bson:"name"`
	Category      string             `bson:"category"`
	Quantity      int64              `bson:"quantity"`
	Price         float64            `bson:"price"`
	Image         string             `bson:"image,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func (o mongoOrder) toDomain() domain.Order {
	return domain.Order{
		ID:            o.ID.Hex(),
		TicketID:      o.TicketID,
		TransactionID: o.TransactionID,
		Customer:      o.Customer,
		Status:        o.Status,
		Vendor:        domain.Vendor{ID: o.Vendor.ID, Email: o.Vendor.Email},
		Name:          o.Name,
		Category:      o.Category,
		Quantity:      o.Quantity,
		Price:         o.Price,
		Image:         o.Image,
		CreatedAt:     o.CreatedAt,
	}
}

// Insert persists a new order. The unique index on transactionId turns a
// concurrent double-insert into domain.ErrDuplicateOrder for the loser.
func (r *OrderRepository) Insert(ctx context.Context, o *domain.Order) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoOrder{
		TicketID:      o.TicketID,
		TransactionID: o.TransactionID,
		Customer:      o.Customer,
		Status:        o.Status,
		Vendor:        mongoVendor{ID: o.Vendor.ID, Email: o.Vendor.Email},
		Name:          o.Name,
		Category:      o.Category,
		Quantity:      o.Quantity,
		Price:         o.Price,
		Image:         o.Image,
		CreatedAt:     o.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrDuplicateOrder
		}
		return "", fmt.Errorf("insert order: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *OrderRepository) FindByTransactionID(ctx context.Context, transactionID string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var o mongoOrder
	if err := r.col.FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	order := o.toDomain()
	return &order, nil
}

func (r *OrderRepository) FindByCustomer(ctx context.Context, email string) ([]domain.Order, error) {
	return r.find(ctx, bson.M{"customer": email})
}

func (r *OrderRepository) FindByVendorEmail(ctx context.Context, email string) ([]domain.Order, error) {
	return r.find(ctx, bson.M{"vendor.email": email})
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	orders := make([]domain.Order, 0)
	for cur.Next(ctx) {
		var o mongoOrder
		if err := cur.Decode(&o); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, o.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

// EnsureIndexes creates the uniqueness constraint the materialization flow
// relies on, plus the query indexes for customer and vendor listings.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "transactionId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "customer", Value: 1}}},
		{Keys: bson.D{{Key: "vendor.email", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
