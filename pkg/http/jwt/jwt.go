// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-arcade/opsboard/pkg/log"
	"github.com/golang-jwt/jwt/v5"
)

/**
 * @file: jwt.go
 * @description: identity token issue and verify
 */

type AuthClaims struct {
	MemberId string `json:"id"`
	jwt.RegisteredClaims
}

var (
	issUser = "opsboard"

	ErrTokenExpired = jwt.ErrTokenExpired
	ErrInvalidToken = errors.New("invalid token")
)

// GenToken signs an HS256 token carrying memberId that expires after accessExpire.
func GenToken(memberId string, secretKey []byte, accessExpire time.Duration) (string, error) {
	return genTokenAt(memberId, secretKey, accessExpire, time.Now())
}

func genTokenAt(memberId string, secretKey []byte, accessExpire time.Duration, now time.Time) (string, error) {
	if memberId == "" {
		return "", errors.New("member id is empty")
	}
	claims := &AuthClaims{
		MemberId: memberId,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issUser, // 签发人
			Subject:   memberId,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessExpire)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
	if err != nil {
		log.Errorw("jwt.NewWithClaims err", "error", err)
		return "", err
	}
	return token, nil
}

// ParseToken verifies signature and expiry and returns the claims.
// Expired tokens yield ErrTokenExpired, everything else wraps ErrInvalidToken.
func ParseToken(token, secretKey string) (*AuthClaims, error) {
	claims := new(AuthClaims)
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (any, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !parsed.Valid || claims.MemberId == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
