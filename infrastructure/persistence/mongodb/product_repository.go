package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"novamarket/application/ports"
	"novamarket/domain/core/entities"
	"novamarket/pkg/errors"
)

const productsCollection = "products"

// productDocument is the BSON shape of a product. The _id is translated to
// the domain-facing string identifier at the repository boundary.
type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Image       string             `bson:"image"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   *time.Time         `bson:"updatedAt,omitempty"`
}

func (d *productDocument) toEntity() *entities.Product {
	return &entities.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Image:       d.Image,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ProductRepository implements ports.ProductRepository on MongoDB
type ProductRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewProductRepository creates a new MongoDB-backed product repository
func NewProductRepository(db *mongo.Database, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection(productsCollection),
		logger:     logger,
	}
}

var _ ports.ProductRepository = (*ProductRepository)(nil)

// FindAll retrieves all products sorted by creation time, newest first
func (r *ProductRepository) FindAll(ctx context.Context) ([]entities.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.NewDatabaseError("find products", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.NewDatabaseError("decode products", err)
	}

	products := make([]entities.Product, 0, len(docs))
	for i := range docs {
		products = append(products, *docs[i].toEntity())
	}
	return products, nil
}

// FindByID retrieves a single product by its hex identifier
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*entities.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NewValidationError("product ID format is invalid")
	}

	var doc productDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NewNotFoundError("product")
	}
	if err != nil {
		return nil, errors.NewDatabaseError("find product", err)
	}

	return doc.toEntity(), nil
}

// Insert persists a new product; the store assigns the identifier
func (r *ProductRepository) Insert(ctx context.Context, product *entities.Product) error {
	doc := productDocument{
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Image:       product.Image,
		CreatedAt:   product.CreatedAt,
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return errors.NewDatabaseError("insert product", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return errors.NewDatabaseError("insert product", nil)
	}
	product.ID = oid.Hex()
	return nil
}

// Update applies the non-nil fields of update and returns the new document
func (r *ProductRepository) Update(ctx context.Context, id string, update entities.ProductUpdate) (*entities.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NewValidationError("product ID format is invalid")
	}

	now := time.Now().UTC()
	set := bson.M{"updatedAt": now}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc productDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NewNotFoundError("product")
	}
	if err != nil {
		return nil, errors.NewDatabaseError("update product", err)
	}

	return doc.toEntity(), nil
}

// Delete removes a product and returns the deleted document
func (r *ProductRepository) Delete(ctx context.Context, id string) (*entities.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NewValidationError("product ID format is invalid")
	}

	var doc productDocument
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NewNotFoundError("product")
	}
	if err != nil {
		return nil, errors.NewDatabaseError("delete product", err)
	}

	return doc.toEntity(), nil
}

// Count returns the number of stored products
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, errors.NewDatabaseError("count products", err)
	}
	return count, nil
}
