package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/muna8646/airtisan/config"
	"github.com/muna8646/airtisan/internal/domain"
	"github.com/muna8646/airtisan/internal/dto"
	"github.com/muna8646/airtisan/internal/repository"
	"github.com/muna8646/airtisan/pkg/errs"
	"github.com/muna8646/airtisan/pkg/utils"
	"github.com/muna8646/airtisan/pkg/validator"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	repo      repository.UserRepository
	config    *config.Config
	publisher EventPublisher
}

func CreateNewAuthService(repo repository.UserRepository, config *config.Config, publisher EventPublisher) AuthService {
	return &AuthServiceImpl{repo: repo, config: config, publisher: publisher}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (resp dto.TokenResponse, err error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err = validator.Struct(req); err != nil {
		return
	}

	_, err = s.repo.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return resp, errs.ErrEmailAlreadyUsed
	}
	if !errors.Is(err, errs.ErrAccountNotFound) {
		return resp, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Register").Msg("")
		return resp, errs.ErrInternalServer
	}

	user := domain.User{
		ID:             ulid.Make().String(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: string(hash),
		IsSeller:       req.IsSeller,
		CreatedAt:      time.Now().UnixMilli(),
	}

	// the unique index still rejects a concurrent registration of the same email
	if err = s.repo.AddUser(ctx, user); err != nil {
		return
	}

	token, err := utils.CreateJWTToken(user.ID, user.Email, user.IsSeller, s.config.JWTConfig.JWTSecret, s.config.JWTConfig.TTL)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Register").Msg("")
		return resp, errs.ErrInternalServer
	}

	s.publisher.Publish(ctx, dto.EventUserRegistered, user.ID, dto.UserRegisteredEvent{
		UserID:   user.ID,
		Email:    user.Email,
		IsSeller: user.IsSeller,
	})

	resp.Token = token

	return
}

func (s *AuthServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (resp dto.TokenResponse, err error) {
	req.Email = normalizeEmail(req.Email)
	if err = validator.Struct(req); err != nil {
		return
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, errs.ErrAccountNotFound) {
			return resp, errs.ErrInvalidCredentials
		}
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password))
	if err != nil {
		log.Ctx(ctx).Info().Str("component", "Login").Str("user_id", user.ID).Msg("password mismatch")
		return resp, errs.ErrInvalidCredentials
	}

	token, err := utils.CreateJWTToken(user.ID, user.Email, user.IsSeller, s.config.JWTConfig.JWTSecret, s.config.JWTConfig.TTL)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Login").Msg("")
		return resp, errs.ErrInternalServer
	}

	resp.Token = token

	return
}

func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID string) (resp dto.UserResponse, err error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return
	}

	return userResponse(user), nil
}

func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (resp dto.UserResponse, err error) {
	if err = validator.Struct(req); err != nil {
		return
	}

	user, err := s.repo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return
	}

	user.Avatar = req.Avatar
	user.Bio = req.Bio

	if err = s.repo.UpdateUserProfile(ctx, user); err != nil {
		return
	}

	return userResponse(user), nil
}

func userResponse(user domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		IsSeller:  user.IsSeller,
		Avatar:    user.Avatar,
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt,
	}
}
