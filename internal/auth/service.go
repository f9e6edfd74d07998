package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/chloe-ha/menu-cms/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const maxPasswordLength = 72 // bcrypt limit

// Service authenticates the single configured admin account and issues
// the bearer tokens guarding all mutating CMS routes.
type Service struct {
	adminEmail   string
	passwordHash []byte
	tokenSecret  string
	tokenTTL     time.Duration
	nowFunc      func() time.Time
	parser       *jwt.Parser
}

// NewService hashes the configured admin password and prepares token issuing.
func NewService(cfg config.AuthConfig) (*Service, error) {
	if len(cfg.AdminPassword) > maxPasswordLength {
		return nil, fmt.Errorf("admin password exceeds maximum length of %d characters", maxPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	return &Service{
		adminEmail:   strings.ToLower(cfg.AdminEmail),
		passwordHash: hash,
		tokenSecret:  cfg.TokenSecret,
		tokenTTL:     cfg.TokenTTL,
		nowFunc:      time.Now,
		parser:       jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name})),
	}, nil
}

// Token carries an issued access token and its expiry.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Claims describes the validated identity extracted from an access token.
type Claims struct {
	Email     string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Login verifies the admin credentials and issues an access token.
func (s *Service) Login(email, password string) (Token, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return Token{}, ErrInvalidCredentials
	}
	if strings.ToLower(email) != s.adminEmail {
		return Token{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return Token{}, ErrInvalidCredentials
	}

	now := s.nowFunc()
	expiresAt := now.Add(s.tokenTTL)
	claims := jwt.MapClaims{
		"sub": s.adminEmail,
		"iss": "menucms",
		"aud": "menucms-api",
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.tokenSecret))
	if err != nil {
		return Token{}, fmt.Errorf("sign access token: %w", err)
	}

	return Token{AccessToken: signed, ExpiresAt: expiresAt}, nil
}

// ValidateAccessToken verifies the token signature and extracts claims.
func (s *Service) ValidateAccessToken(tokenString string) (Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return Claims{}, ErrUnauthorized
	}

	parsed, err := s.parser.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.tokenSecret), nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, ErrUnauthorized
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrUnauthorized
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok || sub != s.adminEmail {
		return Claims{}, ErrUnauthorized
	}

	expFloat, ok := mapClaims["exp"].(float64)
	if !ok {
		return Claims{}, ErrUnauthorized
	}
	exp := time.Unix(int64(expFloat), 0)

	iat := time.Time{}
	if iatFloat, ok := mapClaims["iat"].(float64); ok {
		iat = time.Unix(int64(iatFloat), 0)
	}

	if exp.Before(s.nowFunc()) {
		return Claims{}, ErrUnauthorized
	}

	return Claims{
		Email:     sub,
		ExpiresAt: exp,
		IssuedAt:  iat,
	}, nil
}
