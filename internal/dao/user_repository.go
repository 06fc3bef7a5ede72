// Package dao 实现数据访问层
package dao

import (
	"context"
	"time"

	"github.com/haierkeys/fast-note-service/internal/domain"
	"github.com/haierkeys/fast-note-service/internal/model"
	"github.com/haierkeys/fast-note-service/pkg/timex"
)

// userRepository 实现 domain.UserRepository 接口
type userRepository struct {
	dao *Dao
}

var _ domain.UserRepository = (*userRepository)(nil)

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *userRepository) toDomain(m *model.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.Password,
		Salt:         m.Salt,
		CreatedAt:    time.Time(m.CreatedAt),
		UpdatedAt:    time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *userRepository) toModel(user *domain.User) *model.User {
	return &model.User{
		ID:        user.ID,
		Email:     user.Email,
		Password:  user.PasswordHash,
		Salt:      user.Salt,
		CreatedAt: timex.Time(user.CreatedAt.UTC()),
		UpdatedAt: timex.Time(user.UpdatedAt.UTC()),
	}
}

// GetByID 根据ID获取用户
func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m model.User
	if err := r.dao.conn(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m model.User
	if err := r.dao.conn(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := r.toModel(user)
	if err := r.dao.conn(ctx).Create(m).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, domain.ErrDuplicateKey
		}
		return nil, err
	}
	return r.toDomain(m), nil
}
