package jwt

import (
	"fmt"
	"time"

	"heartlink/backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded identity a valid token carries.
type Claims struct {
	Username string
	Role     models.RoleID
}

// GenerateToken creates a signed, time-limited JWT for a given user.
func GenerateToken(username string, role models.RoleID, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  username,
		"role": int(role),
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}

// ParseToken validates signature and expiry and returns the decoded claims.
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return nil, fmt.Errorf("token missing subject")
	}

	roleFloat, ok := claims["role"].(float64)
	if !ok {
		return nil, fmt.Errorf("token missing role")
	}

	return &Claims{Username: username, Role: models.RoleID(roleFloat)}, nil
}
