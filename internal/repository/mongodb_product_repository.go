package repository

import (
	"context"
	"errors"

	"github.com/alimikegami/e-commerce/shop-service/internal/domain"
	"github.com/alimikegami/e-commerce/shop-service/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBProductRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBProductRepository(db *mongo.Database) ProductRepository {
	return &MongoDBProductRepositoryImpl{db: db}
}

func (r *MongoDBProductRepositoryImpl) NextProductID(ctx context.Context) (id int64, err error) {
	filter := bson.D{{Key: "_id", Value: productsSequenceID}}
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: int64(1)}}}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}

	err = r.db.Collection(countersCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "NextProductID").Msg("")
		return
	}

	return counter.Seq, nil
}

func (r *MongoDBProductRepositoryImpl) ReconcileProductSequence(ctx context.Context) (maxID int64, err error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}})

	var last domain.Product
	err = r.db.Collection(productsCollection).FindOne(ctx, bson.D{}, opts).Decode(&last)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		log.Ctx(ctx).Error().Err(err).Str("component", "ReconcileProductSequence").Msg("")
		return
	}

	maxID = last.ID

	filter := bson.D{{Key: "_id", Value: productsSequenceID}}
	update := bson.D{{Key: "$max", Value: bson.D{{Key: "seq", Value: maxID}}}}

	_, err = r.db.Collection(countersCollection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ReconcileProductSequence").Msg("")
		return
	}

	return maxID, nil
}

func (r *MongoDBProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection(productsCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		if mongo.IsDuplicateKeyError(err) {
			return id, errs.ErrConflict
		}
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBProductRepositoryImpl) DeleteProductByID(ctx context.Context, id int64) (product domain.Product, err error) {
	filter := bson.D{{Key: "id", Value: id}}

	err = r.db.Collection(productsCollection).FindOneAndDelete(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product, errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProductByID").Msg("")
		return
	}

	return product, nil
}

func (r *MongoDBProductRepositoryImpl) GetProducts(ctx context.Context, filter ProductFilter) (data []domain.Product, err error) {
	query := bson.D{}
	if filter.Category != "" {
		query = append(query, bson.E{Key: "category", Value: filter.Category})
	}

	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := r.db.Collection(productsCollection).Find(ctx, query, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}
	defer cursor.Close(ctx)

	data = []domain.Product{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return nil, err
	}

	return data, nil
}
