package repository

import (
	"context"
	"errors"

	"github.com/user/cinewish/internal/model"
)

var (
	// ErrProfileNotFound 修改不存在的用户资料
	ErrProfileNotFound = errors.New("profile not found")
	// ErrMissingIdentity 会话中无法解析出用户 ID
	ErrMissingIdentity = errors.New("session has no user id")
)

//go:generate mockgen -source=store.go -destination=../mocks/store_mock.go -package=mocks

// ProfileStore 用户资料与想看列表存储
//
// GetProfile 在资料不存在时返回 (nil, nil)。想看列表的写操作保证集合语义：
// 重复添加不会产生重复条目。
type ProfileStore interface {
	GetProfile(ctx context.Context, id string) (*model.UserProfile, error)
	UpsertProfileFromSession(ctx context.Context, user *model.SessionUser) (*model.UserProfile, error)
	CleanupWishlistDuplicates(ctx context.Context, id string) ([]int64, error)
	AddToWishlist(ctx context.Context, id string, movieID int64) ([]int64, error)
	RemoveFromWishlist(ctx context.Context, id string, movieID int64) ([]int64, error)
}

func removeMovie(ids []int64, movieID int64) []int64 {
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id != movieID {
			result = append(result, id)
		}
	}
	return result
}
