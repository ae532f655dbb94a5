package service

import (
	"context"
	"fmt"
	"time"

	"college-portal-be/internal/constant"
	"college-portal-be/internal/dto"
	"college-portal-be/internal/entity"
	"college-portal-be/internal/pkg/apperror"
	"college-portal-be/internal/repository/specification"
	"college-portal-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.ProfileResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error)
}

type authService struct {
	uowFactory   unitofwork.RepositoryFactory
	jwtSecret    string
	tokenExpiry  time.Duration
	profileCache *cache.Cache
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, jwtSecret string, tokenExpiry time.Duration) IAuthService {
	return &authService{
		uowFactory:   uowFactory,
		jwtSecret:    jwtSecret,
		tokenExpiry:  tokenExpiry,
		profileCache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.ProfileResponse, error) {
	if !constant.IsValidDepartment(req.Department) {
		return nil, apperror.Validation(fmt.Sprintf("unknown department: %s", req.Department))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Validation("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		Role:         req.Role,
		Department:   req.Department,
		Status:       entity.UserStatusActive,
		CreatedAt:    time.Now(),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	return profileToResponse(user), nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    user.Id.String(),
		"role":       user.Role,
		"department": user.Department,
		"iat":        now.Unix(),
		"exp":        now.Add(s.tokenExpiry).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	s.profileCache.Set(user.Id.String(), user, cache.DefaultExpiration)

	return &dto.LoginResponse{
		Token: token,
		User:  *profileToResponse(user),
	}, nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error) {
	if cached, found := s.profileCache.Get(userId.String()); found {
		if user, ok := cached.(*entity.User); ok {
			return profileToResponse(user), nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	s.profileCache.Set(user.Id.String(), user, cache.DefaultExpiration)
	return profileToResponse(user), nil
}

func profileToResponse(user *entity.User) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		Id:         user.Id,
		Email:      user.Email,
		FullName:   user.FullName,
		Role:       user.Role,
		Department: user.Department,
		CreatedAt:  user.CreatedAt,
	}
}
