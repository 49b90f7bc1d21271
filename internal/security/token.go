package security

import (
	"errors"
	"strconv"
	"time"

	"drivehub-backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// PrincipalClaims is what the external identity provider puts in its access
// tokens: the actor id and its role. The core trusts these claims and does
// no credential checks of its own.
type PrincipalClaims struct {
	ActorID int32            `json:"actor_id"`
	Role    domain.ActorRole `json:"role"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	GenerateToken(actorID int32, role domain.ActorRole, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*PrincipalClaims, error)
}

type tokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) TokenManager {
	return &tokenManager{secret: []byte(secret)}
}

// GenerateToken mints a token the way the identity provider would. It exists
// for local development and tests; production tokens come from outside.
func (m *tokenManager) GenerateToken(actorID int32, role domain.ActorRole, ttl time.Duration) (string, error) {
	claims := PrincipalClaims{
		ActorID: actorID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(actorID)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "identity-provider",
			Audience:  jwt.ClaimStrings{"api-access"},
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*PrincipalClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &PrincipalClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*PrincipalClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != domain.RoleCustomer && claims.Role != domain.RoleShop {
		return nil, ErrInvalidToken
	}
	if claims.ActorID == 0 && claims.Subject != "" {
		id, _ := strconv.Atoi(claims.Subject)
		claims.ActorID = int32(id)
	}
	return claims, nil
}
