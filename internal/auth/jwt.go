package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/obrafacil/obrafacil-api/internal/models"
)

// MembershipClaim is the canonical authorization unit carried in the token:
// one (company id, role) pair per company the user belongs to.
type MembershipClaim struct {
	CompanyID uint64             `json:"company_id"`
	Role      models.CompanyRole `json:"role"`
}

type Claims struct {
	UserID      uint64            `json:"user_id"`
	Email       string            `json:"email"`
	Memberships []MembershipClaim `json:"memberships"`
	jwt.RegisteredClaims
}

// CompanyIDs returns the ids of every company in the claims.
func (c *Claims) CompanyIDs() []uint64 {
	ids := make([]uint64, 0, len(c.Memberships))
	for _, m := range c.Memberships {
		ids = append(ids, m.CompanyID)
	}
	return ids
}

// HasCompany reports whether the claims include a membership in the company.
func (c *Claims) HasCompany(companyID uint64) bool {
	for _, m := range c.Memberships {
		if m.CompanyID == companyID {
			return true
		}
	}
	return false
}

// RoleIn returns the user's role in the company, if any.
func (c *Claims) RoleIn(companyID uint64) (models.CompanyRole, bool) {
	for _, m := range c.Memberships {
		if m.CompanyID == companyID {
			return m.Role, true
		}
	}
	return "", false
}

// TokenManager issues and validates HS256 bearer tokens.
type TokenManager struct {
	secret string
	issuer string
}

func NewTokenManager(secret, issuer string) *TokenManager {
	if secret == "" {
		secret = "change-me-in-production"
	}
	if issuer == "" {
		issuer = "obrafacil"
	}
	return &TokenManager{secret: secret, issuer: issuer}
}

func (tm *TokenManager) GenerateToken(userID uint64, email string, memberships []MembershipClaim, expiresIn time.Duration) (string, error) {
	if userID == 0 {
		return "", fmt.Errorf("user id required")
	}
	now := time.Now()
	claims := Claims{
		UserID:      userID,
		Email:       email,
		Memberships: memberships,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			Issuer:    tm.issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(tm.secret))
}

func (tm *TokenManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tm.secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token failed: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// ExtractToken pulls the bearer token out of an Authorization header.
func ExtractToken(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("invalid authorization header")
	}
	return parts[1], nil
}
