package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/giovanniklein/inn-b2b-varejista/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{collection: db.Collection(cartsCollection)}
}

func (m *mongoCartRepository) Get(ctx context.Context, retailerID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := m.collection.FindOne(ctx, tenantFilter(retailerID)).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return &cart, nil
}

func (m *mongoCartRepository) Upsert(ctx context.Context, retailerID string, cart *domain.Cart) error {
	cart.RetailerID = retailerID
	// _id never travels in $set; the unique retailer_id index keys the doc.
	// On first insert the id is minted here as a hex string, never left to
	// the server, so it decodes back into the string field.
	cart.ID = ""

	update := bson.M{
		"$set":         cart,
		"$setOnInsert": bson.M{"_id": NewID()},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := m.collection.UpdateOne(ctx, tenantFilter(retailerID), update, opts); err != nil {
		return fmt.Errorf("failed to upsert cart: %w", err)
	}
	return nil
}

func (m *mongoCartRepository) Delete(ctx context.Context, retailerID string) error {
	if _, err := m.collection.DeleteOne(ctx, tenantFilter(retailerID)); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
