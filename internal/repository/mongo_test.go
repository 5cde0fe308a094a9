package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/cinewish/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func profileDoc(id string, wishlist ...int64) bson.D {
	list := bson.A{}
	for _, m := range wishlist {
		list = append(list, m)
	}
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: "Ada"},
		{Key: "email", Value: "ada@example.com"},
		{Key: "wishlist", Value: list},
		{Key: "created_at", Value: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestMongoProfileRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get profile", func(mt *mtest.T) {
		repo := NewMongoProfileRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, profileDoc("auth0|1", 1, 2)))

		p, err := repo.GetProfile(context.Background(), "auth0|1")
		require.NoError(mt, err)
		require.NotNil(mt, p)
		assert.Equal(mt, "auth0|1", p.ID)
		assert.Equal(mt, []int64{1, 2}, []int64(p.Wishlist))
	})

	mt.Run("get missing profile", func(mt *mtest.T) {
		repo := NewMongoProfileRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		p, err := repo.GetProfile(context.Background(), "auth0|none")
		require.NoError(mt, err)
		assert.Nil(mt, p)
	})

	mt.Run("upsert", func(mt *mtest.T) {
		repo := NewMongoProfileRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: profileDoc("auth0|1", 9)}))

		p, err := repo.UpsertProfileFromSession(context.Background(), &model.SessionUser{Sub: "auth0|1", Name: "Ada"})
		require.NoError(mt, err)
		assert.Equal(mt, []int64{9}, []int64(p.Wishlist))
	})

	mt.Run("cleanup", func(mt *mtest.T) {
		repo := NewMongoProfileRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: profileDoc("auth0|1", 3, 1, 2)}))

		ids, err := repo.CleanupWishlistDuplicates(context.Background(), "auth0|1")
		require.NoError(mt, err)
		assert.Equal(mt, []int64{3, 1, 2}, ids)
	})

	mt.Run("cleanup missing profile", func(mt *mtest.T) {
		repo := NewMongoProfileRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.CleanupWishlistDuplicates(context.Background(), "auth0|ghost")
		assert.ErrorIs(mt, err, ErrProfileNotFound)
	})

	mt.Run("add to wishlist", func(mt *mtest.T) {
		repo := NewMongoProfileRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: profileDoc("auth0|1", 4, 5)}))

		ids, err := repo.AddToWishlist(context.Background(), "auth0|1", 5)
		require.NoError(mt, err)
		assert.Equal(mt, []int64{4, 5}, ids)
	})
}
