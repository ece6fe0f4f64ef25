package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureIndexes creates the indexes the read path relies on: createdAt for
// list sorting and a text index over name/description for search. Failures
// are logged, not fatal - the collection works without them.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) {
	collection := db.Collection(productsCollection)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}}},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("Could not create indexes", zap.Error(err))
		return
	}
	logger.Info("Database indexes created")
}
