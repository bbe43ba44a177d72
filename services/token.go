package services

import (
	"fmt"
	"time"

	"homestay/constants"
	"homestay/errors"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

type UserInfo struct {
	UserId uint           `json:"userid"`
	Role   constants.Role `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// GenerateToken ký access token HS256 cho user
func GenerateToken(secret []byte, userInfo UserInfo, expiry time.Duration, now time.Time) (string, *Claims, error) {
	claims := &Claims{
		UserInfo: userInfo,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Subject:   fmt.Sprint(userInfo.UserId),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(expiry).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// ParseToken kiểm tra chữ ký, thuật toán và hạn của token tại thời điểm now
func ParseToken(secret []byte, tokenString string, now time.Time) (*Claims, error) {
	parser := &jwt.Parser{SkipClaimsValidation: true}
	claims := &Claims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, errors.ErrInvalidToken.Wrap(err)
	}
	if !claims.VerifyExpiresAt(now.Unix(), true) {
		return nil, errors.ErrInvalidToken
	}
	if claims.UserInfo.UserId == 0 || claims.Id == "" {
		return nil, errors.ErrInvalidToken
	}
	return claims, nil
}
