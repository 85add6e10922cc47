package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alshadows/product-catalog/internal/core/domain"
)

// sortKeys maps API sort fields to document keys.
var sortKeys = map[string]string{
	"id":           "_id",
	"name":         "name",
	"description":  "description",
	"price":        "price",
	"creationDate": "created_at",
	"updateDate":   "updated_at",
}

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productCollection)}
}

type mongoProduct struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	doc := mongoProduct{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert product: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("insert product: unexpected id type %T", res.InsertedID)
	}
	p.ID = oid.Hex()
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc mongoProduct
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProductRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	return r.exists(ctx, bson.M{"_id": oid})
}

func (r *ProductRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, bson.M{"name": name})
}

func (r *ProductRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count products: %w", err)
	}
	return n > 0, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.ErrNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"updated_at":  p.UpdatedAt.UTC(),
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) List(ctx context.Context, req domain.PageRequest) (domain.Page[*domain.Product], error) {
	return r.page(ctx, bson.M{}, req)
}

func (r *ProductRepository) Search(ctx context.Context, term string, req domain.PageRequest) (domain.Page[*domain.Product], error) {
	return r.page(ctx, searchFilter(term), req)
}

func (r *ProductRepository) page(ctx context.Context, filter bson.M, req domain.PageRequest) (domain.Page[*domain.Product], error) {
	sort, err := sortSpec(req.Sort)
	if err != nil {
		return domain.Page[*domain.Product]{}, err
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return domain.Page[*domain.Product]{}, fmt.Errorf("count products: %w", err)
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(req.Offset()).
		SetLimit(int64(req.Size))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return domain.Page[*domain.Product]{}, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoProduct
	if err := cursor.All(ctx, &docs); err != nil {
		return domain.Page[*domain.Product]{}, fmt.Errorf("decode products: %w", err)
	}

	items := make([]*domain.Product, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toDomain())
	}
	return domain.Page[*domain.Product]{Items: items, Page: req.Page, Size: req.Size, Total: total}, nil
}

// sortSpec orders ascending by field, breaking ties by _id.
func sortSpec(field string) (bson.D, error) {
	key, ok := sortKeys[field]
	if !ok {
		return nil, fmt.Errorf("unsupported sort field %q", field)
	}
	if key == "_id" {
		return bson.D{{Key: "_id", Value: 1}}, nil
	}
	return bson.D{{Key: key, Value: 1}, {Key: "_id", Value: 1}}, nil
}

// searchFilter matches term literally, case-insensitively, in name or description.
func searchFilter(term string) bson.M {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"name": re},
		bson.M{"description": re},
	}}
}

func (d mongoProduct) toDomain() *domain.Product {
	return &domain.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}
