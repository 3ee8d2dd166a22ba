package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wldnd519/BE/internal/model"
	"github.com/wldnd519/BE/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrInvalidRegion      = model.ErrInvalidRegion
	ErrSeniorExists       = errors.New("senior already exists")
	ErrSeniorNotFound     = errors.New("senior not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const (
	accessTokenDuration  = 24 * time.Hour
	refreshTokenDuration = 30 * 24 * time.Hour
)

// Claims identifies the senior behind an access token.
type Claims struct {
	SeniorID string
	Name     string
}

type AuthService struct {
	seniors   SeniorStore
	sessions  SessionStore
	jwtSecret []byte
	now       func() time.Time
}

func NewAuthService(seniors SeniorStore, sessions SessionStore, jwtSecret string) *AuthService {
	return &AuthService{
		seniors:   seniors,
		sessions:  sessions,
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.Senior, error) {
	name := strings.TrimSpace(req.Name)
	contact := strings.TrimSpace(req.GuardianContact)
	email := strings.TrimSpace(req.GuardianEmail)
	if name == "" || req.Password == "" || contact == "" || email == "" || strings.TrimSpace(req.Region) == "" {
		return nil, ErrMissingFields
	}
	region, err := model.ParseRegion(req.Region)
	if err != nil {
		return nil, ErrInvalidRegion
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	senior, err := s.seniors.Create(ctx, model.NewSenior{
		Name:            name,
		PasswordHash:    string(hash),
		GuardianContact: contact,
		GuardianEmail:   email,
		Region:          region,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSeniorExists
		}
		return nil, fmt.Errorf("create senior: %w", err)
	}
	return senior, nil
}

func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenPair, error) {
	senior, err := s.seniors.GetByName(ctx, strings.TrimSpace(req.Name))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSeniorNotFound
		}
		return nil, fmt.Errorf("get senior: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(senior.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(ctx, senior.ID, senior.Name)
}

// Refresh rotates a refresh token: the old one is revoked and a new pair issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	tokenHash := hashToken(refreshToken)

	seniorID, err := s.sessions.ValidateRefreshToken(ctx, tokenHash)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if err := s.sessions.RevokeRefreshToken(ctx, tokenHash); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}

	senior, err := s.seniors.GetByID(ctx, seniorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("get senior: %w", err)
	}

	return s.generateTokenPair(ctx, senior.ID, senior.Name)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.sessions.RevokeRefreshToken(ctx, hashToken(refreshToken))
}

func (s *AuthService) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	seniorID, _ := claims["sub"].(string)
	name, _ := claims["name"].(string)
	if seniorID == "" {
		return nil, ErrInvalidToken
	}
	return &Claims{SeniorID: seniorID, Name: name}, nil
}

func (s *AuthService) generateTokenPair(ctx context.Context, seniorID, name string) (*model.TokenPair, error) {
	now := s.now()
	accessClaims := jwt.MapClaims{
		"sub":  seniorID,
		"name": name,
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenDuration).Unix(),
	}
	accessStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshBytes := make([]byte, 32)
	if _, err := rand.Read(refreshBytes); err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	refreshStr := hex.EncodeToString(refreshBytes)

	// Only the hash is persisted.
	if err := s.sessions.StoreRefreshToken(ctx, seniorID, hashToken(refreshStr), now.Add(refreshTokenDuration)); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &model.TokenPair{Token: accessStr, RefreshToken: refreshStr}, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
