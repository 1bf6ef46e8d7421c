package util

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the payload of a login token.
type TokenClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// IssueToken encodes the user id, email and issue time as an unsigned JWT
// (alg "none"). The token carries no signature and no expiry; anyone can
// forge one, so nothing may treat it as proof of identity.
func IssueToken(userID int64, email string, issuedAt time.Time) (string, error) {
	claims := TokenClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	return token.SignedString(jwt.UnsafeAllowNoneSignatureType)
}

// ReadToken decodes the claims of a token produced by IssueToken. No
// integrity check is performed.
func ReadToken(tokenStr string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
