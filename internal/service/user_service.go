package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alimikegami/e-commerce/shop-service/config"
	"github.com/alimikegami/e-commerce/shop-service/internal/domain"
	"github.com/alimikegami/e-commerce/shop-service/internal/dto"
	"github.com/alimikegami/e-commerce/shop-service/internal/repository"
	"github.com/alimikegami/e-commerce/shop-service/pkg/errs"
	"github.com/alimikegami/e-commerce/shop-service/pkg/utils"
	"github.com/alimikegami/e-commerce/shop-service/pkg/validation"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	repo   repository.UserRepository
	config config.Config
}

func CreateUserService(repo repository.UserRepository, config config.Config) UserService {
	return &UserServiceImpl{repo: repo, config: config}
}

func (s *UserServiceImpl) Register(ctx context.Context, req dto.SignupRequest) (resp dto.TokenResponse, err error) {
	if err = validation.Validate(req); err != nil {
		return
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return
	}

	if !user.ID.IsZero() {
		return resp, errs.ErrEmailAlreadyUsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return resp, fmt.Errorf("%w: password longer than 72 bytes", errs.ErrClient)
	}
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Register").Msg("")
		return
	}

	id, err := s.repo.AddUser(ctx, domain.User{
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: string(hash),
		CartData:       domain.NewCart(),
		Date:           time.Now().UTC(),
	})
	if err != nil {
		return
	}

	return s.issueToken(id.Hex())
}

func (s *UserServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (resp dto.TokenResponse, err error) {
	if err = validation.Validate(req); err != nil {
		return
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return
	}

	if user.ID.IsZero() {
		return resp, errs.ErrAccountNotFound
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password))
	if err != nil {
		log.Ctx(ctx).Info().Str("component", "Login").Msg("password mismatch")
		return resp, errs.ErrInvalidCredentials
	}

	return s.issueToken(user.ID.Hex())
}

func (s *UserServiceImpl) issueToken(userID string) (resp dto.TokenResponse, err error) {
	token, err := utils.CreateJWTToken(userID, s.config.JWTConfig.Secret, s.config.JWTConfig.TTL)
	if err != nil {
		return
	}

	return dto.TokenResponse{Success: true, Token: token}, nil
}
