package service

import (
	"context"
	"errors"
	"time"

	"tsai-chat-be/internal/dto"
	"tsai-chat-be/internal/entity"
	"tsai-chat-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username already registered")
	ErrInvalidInviteCode  = errors.New("invalid or already used invite code")
	ErrInvalidCredentials = errors.New("incorrect username or password")
)

type IAuthService interface {
	// Register creates an account against a single-use invite code and
	// returns a signed access token alongside the response body.
	Register(ctx context.Context, req *dto.RegisterRequest) (string, *dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (string, *dto.AuthResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	jwtSecret  string
	tokenTTL   time.Duration
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, jwtSecret string) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		jwtSecret:  jwtSecret,
		tokenTTL:   24 * time.Hour,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (string, *dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindByUsername(ctx, req.Username)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, ErrUsernameTaken
	}

	code, err := uuid.Parse(req.InviteCode)
	if err != nil {
		return "", nil, ErrInvalidInviteCode
	}
	invite, err := uow.InviteCodeRepository().FindUnused(ctx, code)
	if err != nil {
		return "", nil, err
	}
	if invite == nil {
		return "", nil, ErrInvalidInviteCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Username:     req.Username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	// User creation and invite consumption succeed or fail together.
	if err := uow.Begin(ctx); err != nil {
		return "", nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return "", nil, err
	}
	if err := uow.InviteCodeRepository().MarkUsed(ctx, code, user.Username); err != nil {
		return "", nil, err
	}
	if err := uow.Commit(); err != nil {
		return "", nil, err
	}

	token, err := s.mintToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, &dto.AuthResponse{Username: user.Username}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (string, *dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByUsername(ctx, req.Username)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.mintToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, &dto.AuthResponse{Username: user.Username}, nil
}

func (s *authService) mintToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.Id.String(),
		"exp": time.Now().Add(s.tokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
