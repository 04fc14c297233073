package auth

import (
	"errors"
	"time"

	"github.com/TARUN062005/MERNNETFLIX/internal/domain/user"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is the single outward failure mode of verification.
// Malformed, expired and badly-signed tokens all collapse into it so the
// response body never reveals which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	JTI    string `json:"jti"`
	jwt.RegisteredClaims
}

// ParsedRole maps the raw role claim onto the closed enumeration.
func (c *Claims) ParsedRole() (user.Role, bool) {
	return user.ParseRole(c.Role)
}

type Manager struct {
	secret   []byte
	adminTTL time.Duration
	userTTL  time.Duration
}

func NewManager(secret string, adminTTL, userTTL time.Duration) *Manager {
	return &Manager{
		secret:   []byte(secret),
		adminTTL: adminTTL,
		userTTL:  userTTL,
	}
}

// TTLFor returns the session lifetime for a role. Admin sessions are
// deliberately shorter than user sessions.
func (m *Manager) TTLFor(role user.Role) time.Duration {
	if role == user.RoleAdmin {
		return m.adminTTL
	}
	return m.userTTL
}

func (m *Manager) GenerateToken(userID, email string, role user.Role) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role.String(),
		JTI:    uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TTLFor(role))),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) VerifyToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HS256
		_, ok := t.Method.(*jwt.SigningMethodHMAC)

		if !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)

	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if _, ok := claims.ParsedRole(); !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
