package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	cartsCollection     = "carts"
	ordersCollection    = "orders"
	productsCollection  = "products"
	sellersCollection   = "sellers"
	retailersCollection = "retailers"
	outboxCollection    = "outbox_events"
)

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

// EnsureIndexes creates the indexes the business rules depend on. The unique
// index on carts.retailer_id is what enforces "at most one cart per tenant".
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(cartsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "retailer_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_carts_retailer_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create cart index: %w", err)
	}

	_, err = db.Collection(ordersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "retailer_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("idx_orders_retailer_created"),
	})
	if err != nil {
		return fmt.Errorf("failed to create order index: %w", err)
	}

	_, err = db.Collection(sellersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "active", Value: 1}},
		Options: options.Index().SetName("idx_sellers_active"),
	})
	if err != nil {
		return fmt.Errorf("failed to create seller index: %w", err)
	}

	_, err = db.Collection(productsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "seller_id", Value: 1}, {Key: "_id", Value: -1}},
		Options: options.Index().SetName("idx_products_seller_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create product index: %w", err)
	}

	_, err = db.Collection(outboxCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "processed_at", Value: 1}, {Key: "created_at", Value: 1}},
		Options: options.Index().SetName("idx_outbox_unprocessed"),
	})
	if err != nil {
		return fmt.Errorf("failed to create outbox index: %w", err)
	}

	return nil
}

// tenantFilter is the single place a retailer-scope query filter is built.
func tenantFilter(retailerID string) bson.M {
	return bson.M{"retailer_id": retailerID}
}
