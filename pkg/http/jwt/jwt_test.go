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
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "bf284d03-ba65-42d4-a9fe-0d2fbfe61060"

func TestGenAndParseToken(t *testing.T) {
	token, err := GenToken("1b8be820", []byte(testSecret), 30*24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "1b8be820", claims.MemberId)
	assert.Equal(t, "opsboard", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestGenToken_EmptyMember(t *testing.T) {
	_, err := GenToken("", []byte(testSecret), time.Hour)
	assert.Error(t, err)
}

func TestParseToken_Failures(t *testing.T) {
	expired, err := genTokenAt("m1", []byte(testSecret), time.Hour, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	otherKey, err := GenToken("m1", []byte("another-secret"), time.Hour)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, &AuthClaims{MemberId: "m1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"expired", expired, ErrTokenExpired},
		{"bad signature", otherKey, ErrInvalidToken},
		{"malformed", "not-a-token", ErrInvalidToken},
		{"empty", "", ErrInvalidToken},
		{"none algorithm", noneAlg, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ParseToken(tt.token, testSecret)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
