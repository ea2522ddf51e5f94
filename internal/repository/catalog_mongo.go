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

type mongoProductReader struct {
	collection *mongo.Collection
}

func NewMongoProductReader(db *mongo.Database) ProductReader {
	return &mongoProductReader{collection: db.Collection(productsCollection)}
}

func (m *mongoProductReader) FindByID(ctx context.Context, productID string) (*domain.Product, error) {
	var product domain.Product
	err := m.collection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (m *mongoProductReader) FindByIDs(ctx context.Context, productIDs []string) ([]*domain.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	cursor, err := m.collection.Find(ctx, bson.M{"_id": bson.M{"$in": productIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to batch get products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (m *mongoProductReader) Search(ctx context.Context, filter ProductFilter) ([]*domain.Product, int64, error) {
	if len(filter.SellerIDs) == 0 {
		return nil, 0, nil
	}

	query := bson.M{"seller_id": bson.M{"$in": filter.SellerIDs}}
	if filter.Query != "" {
		query["description"] = bson.M{"$regex": filter.Query, "$options": "i"}
	}

	total, err := m.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	opts := options.Find().
		SetSkip(int64(filter.Skip)).
		SetLimit(int64(filter.Limit)).
		SetSort(bson.D{{Key: "_id", Value: -1}})

	cursor, err := m.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, total, nil
}

type mongoSellerReader struct {
	collection *mongo.Collection
}

func NewMongoSellerReader(db *mongo.Database) SellerReader {
	return &mongoSellerReader{collection: db.Collection(sellersCollection)}
}

func (m *mongoSellerReader) FindByID(ctx context.Context, sellerID string) (*domain.Seller, error) {
	var seller domain.Seller
	err := m.collection.FindOne(ctx, bson.M{"_id": sellerID}).Decode(&seller)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSellerNotFound
		}
		return nil, fmt.Errorf("failed to get seller: %w", err)
	}
	return &seller, nil
}

func (m *mongoSellerReader) FindByIDs(ctx context.Context, sellerIDs []string) ([]*domain.Seller, error) {
	if len(sellerIDs) == 0 {
		return nil, nil
	}

	cursor, err := m.collection.Find(ctx, bson.M{"_id": bson.M{"$in": sellerIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to batch get sellers: %w", err)
	}
	defer cursor.Close(ctx)

	var sellers []*domain.Seller
	if err := cursor.All(ctx, &sellers); err != nil {
		return nil, fmt.Errorf("failed to decode sellers: %w", err)
	}
	return sellers, nil
}

func (m *mongoSellerReader) ActiveIDs(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := m.collection.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list active sellers: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode active sellers: %w", err)
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

// NewID mints a document id. Ids are stored as hex strings so domain types
// stay free of driver-specific id types.
func NewID() string {
	return primitive.NewObjectID().Hex()
}
