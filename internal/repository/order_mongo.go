package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/giovanniklein/inn-b2b-varejista/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoOrderRepository struct {
	collection *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepository{collection: db.Collection(ordersCollection)}
}

func (m *mongoOrderRepository) Insert(ctx context.Context, retailerID string, order *domain.Order) (string, error) {
	order.RetailerID = retailerID
	if order.ID == "" {
		order.ID = primitive.NewObjectID().Hex()
	}

	if _, err := m.collection.InsertOne(ctx, order); err != nil {
		return "", fmt.Errorf("failed to insert order: %w", err)
	}
	return order.ID, nil
}

func (m *mongoOrderRepository) FindByID(ctx context.Context, retailerID, orderID string) (*domain.Order, error) {
	filter := tenantFilter(retailerID)
	filter["_id"] = orderID

	var order domain.Order
	err := m.collection.FindOne(ctx, filter).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (m *mongoOrderRepository) FindPage(ctx context.Context, retailerID string, skip, limit int) ([]*domain.Order, error) {
	opts := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := m.collection.Find(ctx, tenantFilter(retailerID), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (m *mongoOrderRepository) Count(ctx context.Context, retailerID string) (int64, error) {
	total, err := m.collection.CountDocuments(ctx, tenantFilter(retailerID))
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return total, nil
}
