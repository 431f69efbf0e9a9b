package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenPayload is the decoded content of a bearer token. The mobile
// number is the stable account identifier; the numeric user id is looked
// up per request so tokens survive credential reissuance.
type TokenPayload struct {
	MobileNumber string
	UserType     string
	ExpiresAt    time.Time
}

// JwtAuthenticator issues and validates HS256-signed bearer tokens.
type JwtAuthenticator struct {
	secret []byte
	ttl    time.Duration
}

func NewJwtAuthenticator(secret string, ttl time.Duration) *JwtAuthenticator {
	return &JwtAuthenticator{secret: []byte(secret), ttl: ttl}
}

// IssueToken signs a token carrying the user's mobile number and role.
func (a *JwtAuthenticator) IssueToken(mobileNumber, userType string) (string, error) {
	if len(a.secret) == 0 {
		return "", errors.New("jwt secret not configured")
	}
	claims := jwt.MapClaims{
		"mobile_number": mobileNumber,
		"user_type":     userType,
		"exp":           time.Now().Add(a.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// ValidateToken verifies the signature and expiry and returns the
// decoded payload.
func (a *JwtAuthenticator) ValidateToken(tokenString string) (*TokenPayload, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	mobile, _ := claims["mobile_number"].(string)
	if mobile == "" {
		return nil, errors.New("token payload missing mobile_number")
	}

	payload := &TokenPayload{MobileNumber: mobile}
	if userType, ok := claims["user_type"].(string); ok {
		payload.UserType = userType
	}
	if exp, ok := claims["exp"].(float64); ok {
		payload.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return payload, nil
}

// ExtractBearerToken pulls the token out of an Authorization header
// value. Both "Bearer <token>" and a raw token are accepted.
func ExtractBearerToken(header string) string {
	header = strings.TrimSpace(header)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return header
}
