package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/easyjatra/marketplace-api/internal/core/domain"
)

const collectionTickets = "tickets"

type TicketRepository struct {
	col *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{col: db.Collection(collectionTickets)}
}

type mongoVendor struct {
	ID    string `bson:"id,omitempty"`
	Email string `bson:"email"`
}

type mongoTicket struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Category string             `bson:"category"`
	Price    float64            `bson:"price"`
	Quantity int64              `bson:"quantity"`
	Vendor   mongoVendor        `bson:"vendor"`
	Image    string             `bson:"image,omitempty"`
}

func (t mongoTicket) toDomain() domain.Ticket {
	return domain.Ticket{
		ID:       t.ID.Hex(),
		Name:     t.Name,
		Category: t.Category,
		Price:    t.Price,
		Quantity: t.Quantity,
		Vendor:   domain.Vendor{ID: t.Vendor.ID, Email: t.Vendor.Email},
		Image:    t.Image,
	}
}

func (r *TicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return decodeTickets(ctx, cur)
}

// FindByID retrieves a ticket by hex object id. A malformed id is reported
// the same way as a missing document.
func (r *TicketRepository) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTicketNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t mongoTicket
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}

	ticket := t.toDomain()
	return &ticket, nil
}

func (r *TicketRepository) FindByVendorEmail(ctx context.Context, email string) ([]domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"vendor.email": email})
	if err != nil {
		return nil, fmt.Errorf("list vendor tickets: %w", err)
	}
	return decodeTickets(ctx, cur)
}

func (r *TicketRepository) Insert(ctx context.Context, t *domain.Ticket) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoTicket{
		Name:     t.Name,
		Category: t.Category,
		Price:    t.Price,
		Quantity: t.Quantity,
		Vendor:   mongoVendor{ID: t.Vendor.ID, Email: t.Vendor.Email},
		Image:    t.Image,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert ticket: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// DecrementQuantity subtracts one from the remaining quantity. No zero
// floor is applied.
func (r *TicketRepository) DecrementQuantity(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTicketNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"quantity": -1}})
	if err != nil {
		return fmt.Errorf("decrement ticket quantity: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes used by the vendor inventory queries.
func (r *TicketRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "vendor.email", Value: 1}},
	})
	return err
}

func decodeTickets(ctx context.Context, cur *mongo.Cursor) ([]domain.Ticket, error) {
	defer cur.Close(ctx)

	tickets := make([]domain.Ticket, 0)
	for cur.Next(ctx) {
		var t mongoTicket
		if err := cur.Decode(&t); err != nil {
			return nil, fmt.Errorf("decode ticket: %w", err)
		}
		tickets = append(tickets, t.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate tickets: %w", err)
	}
	return tickets, nil
}
