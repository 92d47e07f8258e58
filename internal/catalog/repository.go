package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound marks an absent document; the service decides whether absence
// is an error for the caller.
var ErrNotFound = errors.New("document not found")

const (
	categoriesCollection = "categories"
	productsCollection   = "products"
)

// Repository exposes the catalog document collections. The API server only
// reads; the importer also writes.
type Repository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	FindCategoryByID(ctx context.Context, id string) (*Category, error)
	InsertCategory(ctx context.Context, category Category) error

	FindProductByID(ctx context.Context, id string) (*Product, error)
	ListProductsByCategory(ctx context.Context, categoryID string) ([]Product, error)
	CountProducts(ctx context.Context) (int64, error)
	ListProductsWindow(ctx context.Context, skip, limit int64) ([]Product, error)
	InsertProduct(ctx context.Context, product Product) error
}

type mongoRepository struct {
	categories *mongo.Collection
	products   *mongo.Collection
}

// NewRepository builds the Mongo-backed catalog repository.
func NewRepository(database *mongo.Database) (Repository, error) {
	if database == nil {
		return nil, fmt.Errorf("mongo database required")
	}
	return &mongoRepository{
		categories: database.Collection(categoriesCollection),
		products:   database.Collection(productsCollection),
	}, nil
}

func (r *mongoRepository) ListCategories(ctx context.Context) ([]Category, error) {
	cursor, err := r.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	categories := []Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("decoding categories: %w", err)
	}
	return categories, nil
}

func (r *mongoRepository) FindCategoryByID(ctx context.Context, id string) (*Category, error) {
	var category Category
	err := r.categories.FindOne(ctx, bson.M{"id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("finding category %s: %w", id, err)
	}
	return &category, nil
}

func (r *mongoRepository) InsertCategory(ctx context.Context, category Category) error {
	if _, err := r.categories.InsertOne(ctx, category); err != nil {
		return fmt.Errorf("inserting category %s: %w", category.ID, err)
	}
	return nil
}

func (r *mongoRepository) FindProductByID(ctx context.Context, id string) (*Product, error) {
	var product Product
	err := r.products.FindOne(ctx, bson.M{"id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("finding product %s: %w", id, err)
	}
	return &product, nil
}

func (r *mongoRepository) ListProductsByCategory(ctx context.Context, categoryID string) ([]Product, error) {
	cursor, err := r.products.Find(ctx, bson.M{"categoryId": categoryID})
	if err != nil {
		return nil, fmt.Errorf("listing products for category %s: %w", categoryID, err)
	}
	products := []Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decoding products: %w", err)
	}
	return products, nil
}

func (r *mongoRepository) CountProducts(ctx context.Context) (int64, error) {
	count, err := r.products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}
	return count, nil
}

func (r *mongoRepository) ListProductsWindow(ctx context.Context, skip, limit int64) ([]Product, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit)
	cursor, err := r.products.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing product window: %w", err)
	}
	products := []Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decoding products: %w", err)
	}
	return products, nil
}

func (r *mongoRepository) InsertProduct(ctx context.Context, product Product) error {
	if _, err := r.products.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("inserting product %s: %w", product.ID, err)
	}
	return nil
}
