package security

import (
	"crypto/rsa"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nguyensartoro/property-management-system-backend/internal/models"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

// Claims carries the subject's effective role alongside the registered
// JWT claims. The role is resolved at issue time, so a token always
// reflects the highest-ranked role the account held when it logged in.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and parses RS256 access tokens.
type TokenManager struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	ttl        time.Duration
}

func NewTokenManager(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
		ttl:        ttl,
	}
}

// Issue signs an access token for the user.
func (m *TokenManager) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(user.EffectiveRole()),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(m.privateKey)
}

// Parse validates a token and returns the subject it names. An expired
// token gets its own error code so clients know to refresh rather than
// re-authenticate from scratch.
func (m *TokenManager) Parse(tokenString string) (*Subject, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.publicKey, nil
	}, jwt.WithIssuer(m.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, &utils.AppError{
				StatusCode: http.StatusUnauthorized,
				Code:       utils.ErrCodeTokenExpired,
				Message:    "Token has expired",
				Err:        err,
			}
		}
		return nil, utils.NewUnauthenticated()
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, utils.NewUnauthenticated()
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, utils.NewUnauthenticated()
	}

	return &Subject{ID: id, Role: models.RoleType(claims.Role)}, nil
}
