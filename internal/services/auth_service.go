package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"eventhub/config"
	"eventhub/internal/domain/user"
	"eventhub/internal/repository"
	apperrors "eventhub/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.JWTSecret),
		accessTTL: time.Duration(cfg.JWTExpiryMin) * time.Minute,
	}
}

type RegisterInput struct {
	Email       string
	Username    string
	Password    string
	DisplayName string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	User        user.User `json:"user"`
}

type AccessClaims struct {
	UserID string `json:"sub"`
	jwt.RegisteredClaims
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResponse, error) {
	if err := validateRegister(in); err != nil {
		return AuthResponse{}, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil {
		return AuthResponse{}, apperrors.ErrAlreadyExists
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	newUser := user.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(in.Email),
		Username:     in.Username,
		PasswordHash: string(hash),
		DisplayName:  in.DisplayName,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		return AuthResponse{}, err
	}

	return s.issueToken(newUser)
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResponse, error) {
	u, err := s.userRepo.GetByEmail(ctx, strings.ToLower(in.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return AuthResponse{}, apperrors.ErrUnauthorized
		}
		return AuthResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return AuthResponse{}, apperrors.ErrUnauthorized
	}

	return s.issueToken(u)
}

func (s *AuthService) issueToken(u user.User) (AuthResponse, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID: u.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return AuthResponse{}, err
	}

	return AuthResponse{
		AccessToken: signed,
		ExpiresIn:   int64(s.accessTTL.Seconds()),
		User:        u,
	}, nil
}

// ParseAccessToken validates a bearer token and returns its claims.
func (s *AuthService) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrUnauthorized
	}

	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrUnauthorized
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	return claims, nil
}

func validateRegister(in RegisterInput) error {
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return apperrors.ErrInvalidInput
	}
	if in.Username == "" || len(in.Password) < 8 {
		return apperrors.ErrInvalidInput
	}
	return nil
}
