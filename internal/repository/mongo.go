package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/user/cinewish/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProfileCollection MongoDB 中用户资料集合名
const ProfileCollection = "userProfiles"

// ConnectMongo 连接 MongoDB 并 ping，调用方负责 client.Disconnect(ctx)
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// MongoProfileRepository 基于 MongoDB 的用户资料存储
type MongoProfileRepository struct {
	col *mongo.Collection
}

func NewMongoProfileRepository(col *mongo.Collection) *MongoProfileRepository {
	return &MongoProfileRepository{col: col}
}

func (r *MongoProfileRepository) GetProfile(ctx context.Context, id string) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertProfileFromSession 新文档以空想看列表创建，已有文档只更新身份字段
func (r *MongoProfileRepository) UpsertProfileFromSession(ctx context.Context, user *model.SessionUser) (*model.UserProfile, error) {
	if user == nil || user.ProfileID() == "" {
		return nil, ErrMissingIdentity
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":       user.Name,
			"email":      user.Email,
			"picture":    user.Picture,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"wishlist":   bson.A{},
			"is_admin":   false,
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var profile model.UserProfile
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": user.ProfileID()}, update, opts).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// CleanupWishlistDuplicates 用聚合管道原子地去重，保留首次出现顺序
func (r *MongoProfileRepository) CleanupWishlistDuplicates(ctx context.Context, id string) ([]int64, error) {
	dedupe := bson.D{{Key: "$reduce", Value: bson.D{
		{Key: "input", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$wishlist", bson.A{}}}}},
		{Key: "initialValue", Value: bson.A{}},
		{Key: "in", Value: bson.D{{Key: "$cond", Value: bson.A{
			bson.D{{Key: "$in", Value: bson.A{"$$this", "$$value"}}},
			"$$value",
			bson.D{{Key: "$concatArrays", Value: bson.A{"$$value", bson.A{"$$this"}}}},
		}}}},
	}}}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "wishlist", Value: dedupe},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
	}
	return r.updateWishlist(ctx, id, pipeline)
}

func (r *MongoProfileRepository) AddToWishlist(ctx context.Context, id string, movieID int64) ([]int64, error) {
	return r.updateWishlist(ctx, id, bson.M{
		"$addToSet": bson.M{"wishlist": movieID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
}

func (r *MongoProfileRepository) RemoveFromWishlist(ctx context.Context, id string, movieID int64) ([]int64, error) {
	return r.updateWishlist(ctx, id, bson.M{
		"$pull": bson.M{"wishlist": movieID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
}

func (r *MongoProfileRepository) updateWishlist(ctx context.Context, id string, update interface{}) ([]int64, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var profile model.UserProfile
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	if profile.Wishlist == nil {
		return []int64{}, nil
	}
	return []int64(profile.Wishlist), nil
}
