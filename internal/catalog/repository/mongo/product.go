package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yanis004/WebServices/internal/catalog/domain"
	apperrors "github.com/yanis004/WebServices/pkg/errors"
	"github.com/yanis004/WebServices/pkg/pagination"
)

// productDoc is the BSON shape of a product document. The domain type
// keeps string IDs; the ObjectID conversion stays inside this package.
type productDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	About     string             `bson:"about"`
	Price     float64            `bson:"price"`
	CreatedAt primitive.DateTime `bson:"created_at"`
	UpdatedAt primitive.DateTime `bson:"updated_at"`
}

func (d *productDoc) toDomain() domain.Product {
	return domain.Product{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		About:     d.About,
		Price:     d.Price,
		CreatedAt: d.CreatedAt.Time().UTC(),
		UpdatedAt: d.UpdatedAt.Time().UTC(),
	}
}

// ProductRepository implements repository.ProductRepository using MongoDB.
type ProductRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a MongoDB-backed product repository over the
// "products" collection of the given database.
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{collection: db.Collection("products")}
}

// Create inserts a new product and fills in its generated ID.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	doc := productDoc{
		Name:      p.Name,
		About:     p.About,
		Price:     p.Price,
		CreatedAt: primitive.NewDateTimeFromTime(p.CreatedAt),
		UpdatedAt: primitive.NewDateTimeFromTime(p.UpdatedAt),
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	p.ID = oid.Hex()

	return nil
}

// GetByID retrieves a product by its hex ObjectID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("product", id)
	}

	var doc productDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	p := doc.toDomain()
	return &p, nil
}

// List returns a page of products with the total count.
func (r *ProductRepository) List(ctx context.Context, params pagination.Params) ([]domain.Product, int, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(params.Offset)).
		SetLimit(int64(params.Limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]domain.Product, 0)
	for cursor.Next(ctx) {
		var doc productDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, doc.toDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate products: %w", err)
	}

	return products, int(total), nil
}

// Delete removes a product by its hex ObjectID.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("product", id)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if res.DeletedCount == 0 {
		return apperrors.NotFound("product", id)
	}

	return nil
}
