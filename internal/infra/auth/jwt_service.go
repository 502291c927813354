package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"marketplace/config"
	"marketplace/internal/domain/service"
)

const defaultAccessTokenTTL = 24 * time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret string        // Secret key for signing access tokens.
	ttl    time.Duration // Time-to-live for access tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := defaultAccessTokenTTL
	if cfg.Auth != nil && cfg.Auth.AccessTokenTTL > 0 {
		ttl = cfg.Auth.AccessTokenTTL
	}

	return &jwtService{
		secret: cfg.SecretKey.Access,
		ttl:    ttl,
	}, nil
}

// GenerateToken creates a signed access token carrying the account's
// identity, role and staff flag.
func (s *jwtService) GenerateToken(userID uuid.UUID, role string, isStaff bool) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"role":  role,
		"staff": isStaff,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// ValidateToken checks the validity of a token string and extracts its claims.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return nil, jwt.ErrTokenInvalidSubject
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, jwt.ErrTokenInvalidSubject
	}

	role, _ := mapClaims["role"].(string)
	isStaff, _ := mapClaims["staff"].(bool)

	return &service.Claims{
		UserID:  userID,
		Role:    role,
		IsStaff: isStaff,
	}, nil
}
