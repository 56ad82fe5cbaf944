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

type MongoDBUserRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBUserRepository(db *mongo.Database) UserRepository {
	return &MongoDBUserRepositoryImpl{db: db}
}

func (r *MongoDBUserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (user domain.User, err error) {
	filter := bson.D{{Key: "email", Value: email}}

	err = r.db.Collection(usersCollection).FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user, nil
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetUserByEmail").Msg("")
		return user, err
	}

	return user, nil
}

func (r *MongoDBUserRepositoryImpl) GetUserByID(ctx context.Context, id string) (user domain.User, err error) {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetUserByID").Msg("")
		return user, errs.ErrNotFound
	}

	err = r.db.Collection(usersCollection).FindOne(ctx, bson.D{{Key: "_id", Value: userID}}).Decode(&user)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetUserByID").Msg("")
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user, errs.ErrNotFound
		}
		return user, err
	}

	return user, nil
}

func (r *MongoDBUserRepositoryImpl) AddUser(ctx context.Context, data domain.User) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection(usersCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddUser").Msg("")
		if mongo.IsDuplicateKeyError(err) {
			return id, errs.ErrEmailAlreadyUsed
		}
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBUserRepositoryImpl) GetCart(ctx context.Context, userID string) (cart domain.Cart, err error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return cart, errs.ErrNotFound
	}

	opts := options.FindOne().SetProjection(bson.D{{Key: "cartData", Value: 1}})

	var user domain.User
	err = r.db.Collection(usersCollection).FindOne(ctx, bson.D{{Key: "_id", Value: oid}}, opts).Decode(&user)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetCart").Msg("")
		if errors.Is(err, mongo.ErrNoDocuments) {
			return cart, errs.ErrNotFound
		}
		return cart, err
	}

	return user.CartData, nil
}

func (r *MongoDBUserRepositoryImpl) IncrementCartItem(ctx context.Context, userID string, itemID int) (err error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return errs.ErrNotFound
	}

	filter := bson.D{{Key: "_id", Value: oid}}
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: cartSlotField(itemID), Value: int64(1)}}}}

	result, err := r.db.Collection(usersCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "IncrementCartItem").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

// DecrementCartItem only matches a slot holding a positive quantity, so the
// floor at zero is enforced by the store in the same operation.
func (r *MongoDBUserRepositoryImpl) DecrementCartItem(ctx context.Context, userID string, itemID int) (err error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return errs.ErrNotFound
	}

	field := cartSlotField(itemID)
	filter := bson.D{
		{Key: "_id", Value: oid},
		{Key: field, Value: bson.D{{Key: "$gt", Value: 0}}},
	}
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: field, Value: int64(-1)}}}}

	result, err := r.db.Collection(usersCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DecrementCartItem").Msg("")
		return
	}

	if result.MatchedCount > 0 {
		return nil
	}

	count, err := r.db.Collection(usersCollection).CountDocuments(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DecrementCartItem").Msg("")
		return
	}

	if count == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func cartSlotField(itemID int) string {
	return "cartData." + domain.SlotKey(itemID)
}
