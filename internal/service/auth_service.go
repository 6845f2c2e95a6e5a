package service

import (
	"context"
	"errors"
	"mindcheck_backend/internal/config"
	"mindcheck_backend/internal/model"
	"mindcheck_backend/internal/util"
	"mindcheck_backend/pkg/logger"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	UserRepo UserStore
	Cfg      *config.Config
}

func NewAuthService(userRepo UserStore, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	return s.createUser(ctx, req.Name, req.Email, req.Password, model.RoleUser)
}

func (s *AuthService) createUser(ctx context.Context, name, email, password string, role model.UserRole) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := s.UserRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, util.ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.UserRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, User: user}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*model.User, error) {
	return s.UserRepo.FindByID(ctx, userID)
}

// EnsureAdmin 首次启动时创建配置中的管理员
func (s *AuthService) EnsureAdmin(ctx context.Context) error {
	admin := s.Cfg.Admin
	if admin.Email == "" || admin.Password == "" {
		return nil
	}
	_, err := s.createUser(ctx, admin.Name, admin.Email, admin.Password, model.RoleAdmin)
	if errors.Is(err, util.ErrEmailRegistered) {
		return nil
	}
	if err != nil {
		return err
	}
	logger.Log.Info("bootstrap admin created", zap.String("email", admin.Email))
	return nil
}
