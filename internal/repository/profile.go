package repository

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/user/cinewish/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository 基于 PostgreSQL 的用户资料存储
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetProfile 根据 ID 查找用户资料，不存在时返回 nil
func (r *ProfileRepository) GetProfile(ctx context.Context, id string) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertProfileFromSession 按会话信息创建或更新资料，不会改动想看列表
func (r *ProfileRepository) UpsertProfileFromSession(ctx context.Context, user *model.SessionUser) (*model.UserProfile, error) {
	if user == nil || user.ProfileID() == "" {
		return nil, ErrMissingIdentity
	}

	now := time.Now().UTC()
	profile := &model.UserProfile{
		ID:        user.ProfileID(),
		Name:      user.Name,
		Email:     user.Email,
		Picture:   user.Picture,
		Wishlist:  pq.Int64Array{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "picture", "updated_at"}),
	}).Create(profile).Error
	if err != nil {
		return nil, err
	}

	return r.GetProfile(ctx, profile.ID)
}

// CleanupWishlistDuplicates 想看列表去重（保留首次出现顺序）并写回
func (r *ProfileRepository) CleanupWishlistDuplicates(ctx context.Context, id string) ([]int64, error) {
	return r.mutateWishlist(ctx, id, model.UniqueMovieIDs)
}

// AddToWishlist 添加电影，已存在时不重复添加
func (r *ProfileRepository) AddToWishlist(ctx context.Context, id string, movieID int64) ([]int64, error) {
	return r.mutateWishlist(ctx, id, func(ids []int64) []int64 {
		for _, existing := range ids {
			if existing == movieID {
				return ids
			}
		}
		return append(ids, movieID)
	})
}

// RemoveFromWishlist 移除电影的所有条目
func (r *ProfileRepository) RemoveFromWishlist(ctx context.Context, id string, movieID int64) ([]int64, error) {
	return r.mutateWishlist(ctx, id, func(ids []int64) []int64 {
		return removeMovie(ids, movieID)
	})
}

// mutateWishlist 在事务内锁定资料行，读取、变换并写回想看列表
func (r *ProfileRepository) mutateWishlist(ctx context.Context, id string, fn func([]int64) []int64) ([]int64, error) {
	var result []int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile model.UserProfile
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		if err != nil {
			return err
		}

		current := []int64(profile.Wishlist)
		if current == nil {
			current = []int64{}
		}
		next := fn(append([]int64(nil), current...))
		if next == nil {
			next = []int64{}
		}

		if !sameIDs(current, next) {
			err = tx.Model(&model.UserProfile{}).Where("id = ?", id).Updates(map[string]interface{}{
				"wishlist":   pq.Int64Array(next),
				"updated_at": time.Now().UTC(),
			}).Error
			if err != nil {
				return err
			}
		}

		result = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func sameIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
