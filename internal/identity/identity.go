package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the provider-issued role claim. Roles are compared as plain values;
// there is no per-role user type.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = ""
)

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// Session is the resolved caller identity for one request.
type Session struct {
	UserID string
	Email  string
	Role   Role
}

var ErrInvalidSession = errors.New("invalid session")

// Provider verifies session tokens issued by the upstream identity provider.
// The concrete implementation is swappable so handlers can be tested against
// a fake.
type Provider interface {
	VerifySession(ctx context.Context, token string) (*Session, error)
}

// jwtProvider validates provider-issued HMAC session tokens locally.
type jwtProvider struct {
	secret []byte
}

func NewJWTProvider(secret string) Provider {
	return &jwtProvider{secret: []byte(secret)}
}

func (p *jwtProvider) VerifySession(ctx context.Context, tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidSession
	}
	if exp, ok := claims["exp"].(float64); ok && time.Now().Unix() > int64(exp) {
		return nil, ErrInvalidSession
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidSession
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &Session{UserID: sub, Email: email, Role: Role(role)}, nil
}
