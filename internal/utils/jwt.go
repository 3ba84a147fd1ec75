package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned by [TokenExpiry] when the token is a JWT without
// an exp claim.
var ErrNoExpiry = errors.New("token carries no expiration")

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// Auth tokens are issued by the remote service and verified there; the client
// only needs the expiry to schedule refreshes.
//
// Returns [ErrNoExpiry] when the token parses but has no exp claim, or a
// wrapped parse error when tokenString is not a JWT.
func TokenExpiry(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing token: %w", err)
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("error reading token expiration: %w", err)
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}

	return exp.Time, nil
}
