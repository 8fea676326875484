package gripcontrol

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// VerifySig checks a Grip-Sig token against key and returns its claims. The
// token must be HMAC signed; an "exp" claim, if present, must be in the
// future.
func VerifySig(token string, key []byte) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrSigUnexpectedMethod
		}
		return key, nil
	})
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, ErrSigUnexpectedMethod):
		return nil, ErrSigUnexpectedMethod
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, fmt.Errorf("%w: %v", ErrSigMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, fmt.Errorf("%w: %v", ErrSigInvalid, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrSigExpired
	default:
		return nil, fmt.Errorf("%w: %v", ErrSigInvalid, err)
	}
}

// ValidateSig reports whether token is a valid, unexpired Grip-Sig signed
// with key. Use VerifySig to find out why a token was rejected.
func ValidateSig(token string, key []byte) bool {
	_, err := VerifySig(token, key)
	return err == nil
}
