package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Role names, ordered by priority. A user's effective role is the
// highest-priority role among the ones granted to them.
const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
	RoleOwner    = "owner"
)

var rolePriority = map[string]int{
	RoleEmployee: 1,
	RoleAdmin:    2,
	RoleOwner:    3,
}

// EffectiveRole returns the highest-priority role in the list, or the empty
// string when no known role is present.
func EffectiveRole(roles []string) string {
	effective := ""
	best := 0
	for _, r := range roles {
		if p, ok := rolePriority[r]; ok && p > best {
			best = p
			effective = r
		}
	}
	return effective
}

// HasAtLeast reports whether any granted role meets or exceeds the required one.
func HasAtLeast(roles []string, required string) bool {
	need, ok := rolePriority[required]
	if !ok {
		return false
	}
	for _, r := range roles {
		if rolePriority[r] >= need {
			return true
		}
	}
	return false
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUserWithRoles(userID int64) (*User, error)
	HashPassword(password string) (string, error)
}

type RepositoryAPI interface {
	GetPasswordForEmail(email string) (passwordHash string, userID int64, err error)
	GetUserWithRoles(userID int64) (*User, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID int64, email string) (token string, err error)
	GenerateRefreshToken(userID int64, email string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type User struct {
	ID    int64    `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Roles []string `json:"roles,omitempty"`
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) EffectiveRole() string {
	return EffectiveRole(u.Roles)
}

func (u *User) IsAdmin() bool {
	return HasAtLeast(u.Roles, RoleAdmin)
}

func (u *User) IsOwner() bool {
	return HasAtLeast(u.Roles, RoleOwner)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user is inactive")
	ErrUserNotFound       = errors.New("user not found")
)

type ctxKey string

const ContextUserKey ctxKey = "authUser"

// UserFromContext returns the authenticated user placed in the request context
// by the auth middleware.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(ContextUserKey).(*User)
	return user, ok
}

func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, user)
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
