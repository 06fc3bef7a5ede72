package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/haierkeys/fast-note-service/internal/domain"
	"github.com/haierkeys/fast-note-service/internal/dto"
	"github.com/haierkeys/fast-note-service/pkg/app"
	"github.com/haierkeys/fast-note-service/pkg/code"
	"github.com/haierkeys/fast-note-service/pkg/logger"
	"github.com/haierkeys/fast-note-service/pkg/util"
	"github.com/haierkeys/fast-note-service/pkg/workerpool"

	"go.uber.org/zap"
)

// UserService 定义用户业务服务接口
type UserService interface {
	// Register 用户注册，成功后返回会话 Token
	Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserAuthDTO, error)

	// Login 用户登录
	Login(ctx context.Context, params *dto.UserLoginRequest) (*dto.UserAuthDTO, error)
}

// userService 实现 UserService 接口
type userService struct {
	userRepo     domain.UserRepository
	tokenManager app.TokenManager
	pool         *workerpool.Pool
	logger       *zap.Logger
	config       *UserServiceConfig
	now          func() time.Time
}

// NewUserService 创建 UserService 实例
// pool runs bcrypt off the request goroutine; nil hashes inline
func NewUserService(userRepo domain.UserRepository, tokenManager app.TokenManager, pool *workerpool.Pool, logger *zap.Logger, config *UserServiceConfig) UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config == nil {
		config = &UserServiceConfig{RegisterIsEnable: true}
	}
	return &userService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		pool:         pool,
		logger:       logger,
		config:       config,
		now:          time.Now,
	}
}

func (s *userService) domainToDTO(user *domain.User) *dto.UserDTO {
	return &dto.UserDTO{ID: user.ID, Email: user.Email}
}

// Register 用户注册
func (s *userService) Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserAuthDTO, error) {
	if !s.config.RegisterIsEnable {
		return nil, code.ErrorUserRegisterIsDisable
	}

	email := strings.TrimSpace(params.Email)
	if email == "" || params.Password == "" {
		return nil, code.ErrorInvalidParams.WithDetails("Email and password are required.")
	}
	if !util.IsValidEmail(email) {
		return nil, code.ErrorUserEmailInvalid
	}
	if !util.IsValidPassword(params.Password) {
		return nil, code.ErrorUserPasswordTooShort
	}

	hash, err := s.hash(ctx, params.Password)
	if err != nil {
		s.logger.Error("password hash failed", logger.TraceField(ctx), zap.Error(err))
		return nil, code.ErrorPasswordHash
	}

	now := s.now()
	user, err := s.userRepo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: hash,
		Salt:         util.PasswordSalt(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, code.ErrorUserEmailAlreadyExists
		}
		s.logger.Error("user register failed", logger.TraceField(ctx), zap.Error(err))
		return nil, code.ErrorUserRegister
	}

	return s.issue(ctx, user)
}

// Login 用户登录
func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest) (*dto.UserAuthDTO, error) {
	email := strings.TrimSpace(params.Email)
	if email == "" || params.Password == "" {
		return nil, code.ErrorInvalidParams.WithDetails("Email and password are required.")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, toCodeError(ctx, s.logger, "UserService.Login", err, code.ErrorUserNotFound)
	}

	ok, err := s.check(ctx, user.PasswordHash, params.Password)
	if err != nil {
		return nil, toCodeError(ctx, s.logger, "UserService.Login", err, nil)
	}
	if !ok {
		return nil, code.ErrorUserLoginPasswordFailed
	}

	return s.issue(ctx, user)
}

func (s *userService) issue(ctx context.Context, user *domain.User) (*dto.UserAuthDTO, error) {
	token, err := s.tokenManager.Issue(user.ID)
	if err != nil {
		s.logger.Error("token issue failed", logger.TraceField(ctx), zap.Int64(logger.FieldUID, user.ID), zap.Error(err))
		return nil, code.ErrorTokenGenerate
	}
	return &dto.UserAuthDTO{User: s.domainToDTO(user), Token: token}, nil
}

func (s *userService) hash(ctx context.Context, password string) (string, error) {
	if s.pool == nil {
		return util.GeneratePasswordHash(password)
	}
	return workerpool.Do(ctx, s.pool, func(context.Context) (string, error) {
		return util.GeneratePasswordHash(password)
	})
}

func (s *userService) check(ctx context.Context, hash, password string) (bool, error) {
	if s.pool == nil {
		return util.CheckPasswordHash(hash, password), nil
	}
	return workerpool.Do(ctx, s.pool, func(context.Context) (bool, error) {
		return util.CheckPasswordHash(hash, password), nil
	})
}
