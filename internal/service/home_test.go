package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/cinewish/internal/mocks"
	"github.com/user/cinewish/internal/model"
	"go.uber.org/mock/gomock"
)

func popularPage() *model.MoviePage {
	return &model.MoviePage{Page: 1, Results: []model.Movie{
		{ID: 1, Title: "Low", Popularity: 10},
		{ID: 2, Title: "High", Popularity: 99},
		{ID: 3, Title: "Mid", Popularity: 50},
	}}
}

func TestHomeService_Anonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockMovieCatalog(ctrl)
	store := mocks.NewMockProfileStore(ctrl)
	recommender := mocks.NewMockRecommender(ctrl)

	page := popularPage()
	catalog.EXPECT().GetPopularMovies(gomock.Any(), 1).Return(page, nil)

	home, err := NewHomeService(catalog, store, recommender).Build(context.Background(), nil)
	require.NoError(t, err)

	assert.Nil(t, home.Profile)
	assert.Nil(t, home.Recommendations)
	require.NotNil(t, home.Hero)
	assert.Equal(t, "High", home.Hero.Title)
	assert.Equal(t, []string{"High", "Mid", "Low"}, titles(home.Movies))
	assert.Equal(t, []string{"Mid", "Low"}, titles(home.Carousel))
	// 缓存中的原始顺序不被修改
	assert.Equal(t, "Low", page.Results[0].Title)
}

func TestHomeService_SignedIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockMovieCatalog(ctrl)
	store := mocks.NewMockProfileStore(ctrl)
	recommender := mocks.NewMockRecommender(ctrl)

	user := &model.SessionUser{Sub: "auth0|1", Name: "Ada"}
	profile := &model.UserProfile{ID: "auth0|1", Name: "Ada", Wishlist: pq.Int64Array{3}}

	gomock.InOrder(
		store.EXPECT().GetProfile(gomock.Any(), "auth0|1").Return(profile, nil),
		store.EXPECT().UpsertProfileFromSession(gomock.Any(), user).Return(nil, errors.New("db down")),
		catalog.EXPECT().GetPopularMovies(gomock.Any(), 1).Return(popularPage(), nil),
		recommender.EXPECT().Recommend(gomock.Any(), profile, gomock.Len(3)).
			Return([]model.Recommendation{{Title: "High", Reason: "Popular"}}, nil),
	)

	home, err := NewHomeService(catalog, store, recommender).Build(context.Background(), user)
	require.NoError(t, err)

	assert.Same(t, profile, home.Profile)
	assert.True(t, home.InWishlist(3))
	assert.False(t, home.InWishlist(1))
	require.Len(t, home.Recommendations, 1)
}

func TestHomeService_RecommendationFailureIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockMovieCatalog(ctrl)
	store := mocks.NewMockProfileStore(ctrl)
	recommender := mocks.NewMockRecommender(ctrl)

	user := &model.SessionUser{Sub: "auth0|1"}
	store.EXPECT().GetProfile(gomock.Any(), "auth0|1").Return(nil, nil)
	store.EXPECT().UpsertProfileFromSession(gomock.Any(), user).Return(&model.UserProfile{ID: "auth0|1"}, nil)
	catalog.EXPECT().GetPopularMovies(gomock.Any(), 1).Return(popularPage(), nil)
	recommender.EXPECT().Recommend(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("quota"))

	home, err := NewHomeService(catalog, store, recommender).Build(context.Background(), user)
	require.NoError(t, err)
	require.NotNil(t, home.Profile)
	assert.Equal(t, "auth0|1", home.Profile.ID)
	assert.Empty(t, home.Recommendations)
}

func TestHomeService_CatalogError(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockMovieCatalog(ctrl)

	catalog.EXPECT().GetPopularMovies(gomock.Any(), 1).Return(nil, errors.New("timeout"))

	_, err := NewHomeService(catalog, mocks.NewMockProfileStore(ctrl), nil).Build(context.Background(), nil)
	assert.Error(t, err)
}

func titles(movies []model.Movie) []string {
	out := make([]string, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.Title)
	}
	return out
}
