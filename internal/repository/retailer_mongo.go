package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/giovanniklein/inn-b2b-varejista/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoRetailerRepository struct {
	collection *mongo.Collection
}

func NewMongoRetailerRepository(db *mongo.Database) RetailerRepository {
	return &mongoRetailerRepository{collection: db.Collection(retailersCollection)}
}

func (m *mongoRetailerRepository) FindByID(ctx context.Context, retailerID string) (*domain.Retailer, error) {
	var retailer domain.Retailer
	err := m.collection.FindOne(ctx, bson.M{"_id": retailerID}).Decode(&retailer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRetailerNotFound
		}
		return nil, fmt.Errorf("failed to get retailer: %w", err)
	}
	return &retailer, nil
}

func (m *mongoRetailerRepository) UpdateAddresses(ctx context.Context, retailerID string, addresses []domain.Address) error {
	update := bson.M{"$set": bson.M{"addresses": addresses}}
	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": retailerID}, update)
	if err != nil {
		return fmt.Errorf("failed to update addresses: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrRetailerNotFound
	}
	return nil
}
