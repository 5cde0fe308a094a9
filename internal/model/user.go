package model

import (
	"time"

	"github.com/lib/pq"
)

// UserProfile 用户资料，主键为身份提供方的 subject
type UserProfile struct {
	ID        string        `json:"id" gorm:"primaryKey;size:190" bson:"_id"`
	Name      string        `json:"name" bson:"name"`
	Email     string        `json:"email" bson:"email"`
	Picture   string        `json:"picture,omitempty" bson:"picture,omitempty"`
	Wishlist  pq.Int64Array `json:"wishlist" gorm:"type:bigint[]" bson:"wishlist"`
	IsAdmin   bool          `json:"is_admin,omitempty" bson:"is_admin"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}

// TableName 表名
func (UserProfile) TableName() string {
	return "user_profiles"
}

// HasMovie 想看列表中是否已有该电影
func (p *UserProfile) HasMovie(movieID int64) bool {
	for _, id := range p.Wishlist {
		if id == movieID {
			return true
		}
	}
	return false
}

// UniqueMovieIDs 去重，保留首次出现的顺序
func UniqueMovieIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// SessionUser 专门用于 Session 存储的用户信息结构
type SessionUser struct {
	Sub       string
	ID        string
	OrgID     string
	Name      string
	Email     string
	Picture   string
	ExpiresAt time.Time
}

// Subject 优先 sub，其次 id
func (u SessionUser) Subject() string {
	if u.Sub != "" {
		return u.Sub
	}
	return u.ID
}

// ProfileID 解析资料主键：org_id → sub → id，全部缺失时返回空字符串
func (u SessionUser) ProfileID() string {
	switch {
	case u.OrgID != "":
		return u.OrgID
	case u.Sub != "":
		return u.Sub
	default:
		return u.ID
	}
}

// Expired 会话是否已过期（零值视为不过期）
func (u SessionUser) Expired(now time.Time) bool {
	return !u.ExpiresAt.IsZero() && now.After(u.ExpiresAt)
}
