package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/trisers/shopauth/domain"
)

// JWTServiceImpl implements domain.TokenService. Access and refresh
// tokens are signed with independent secrets and expiries.
type JWTServiceImpl struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccessToken implements domain.TokenService
func (j *JWTServiceImpl) IssueAccessToken(claims *domain.TokenClaims) (string, error) {
	return j.sign(claims, j.accessSecret, j.accessTTL)
}

// IssueRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) IssueRefreshToken(claims *domain.TokenClaims) (string, error) {
	return j.sign(claims, j.refreshSecret, j.refreshTTL)
}

// VerifyAccessToken implements domain.TokenService
func (j *JWTServiceImpl) VerifyAccessToken(token string) (*domain.TokenClaims, error) {
	return j.verify(token, j.accessSecret)
}

// VerifyRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) VerifyRefreshToken(token string) (*domain.TokenClaims, error) {
	return j.verify(token, j.refreshSecret)
}

func (j *JWTServiceImpl) sign(claims *domain.TokenClaims, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	mapClaims := jwt.MapClaims{
		"name":  claims.Name,
		"email": claims.Email,
		"role":  claims.Role,
		"iss":   j.issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	if len(claims.CapabilityIDs) > 0 {
		ids := make([]interface{}, len(claims.CapabilityIDs))
		for i, id := range claims.CapabilityIDs {
			ids[i] = id
		}
		mapClaims["capability_ids"] = ids
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	return token.SignedString(secret)
}

func (j *JWTServiceImpl) verify(tokenString string, secret []byte) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	name, _ := claims["name"].(string)
	email, ok := claims["email"].(string)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	iat, _ := claims["iat"].(float64)
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	tokenClaims := &domain.TokenClaims{
		Name:      name,
		Email:     email,
		Role:      role,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}

	// JSON numbers decode as float64
	if rawIDs, ok := claims["capability_ids"].([]interface{}); ok {
		ids := make([]uint, 0, len(rawIDs))
		for _, raw := range rawIDs {
			if f, ok := raw.(float64); ok {
				ids = append(ids, uint(f))
			}
		}
		tokenClaims.CapabilityIDs = ids
	}

	return tokenClaims, nil
}
