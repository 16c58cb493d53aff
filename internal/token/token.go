// Package token extracts identity claims from a compact session token
// without verifying its signature. The signature is checked only by the
// remote issuer; decoding here addresses records locally and must never be
// treated as an authentication check.
package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dbalogun/alumnihub/internal/common"
)

// Claims is the subset of session-token claims the client consumes. The
// subject may appear under the registered "sub" claim or, with some
// issuers, under "user_id".
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id,omitempty"`
}

var parser = jwt.NewParser()

// Decode splits the compact token into its three segments, base64url-decodes
// the claims segment and parses it. Malformed input (wrong segment count,
// invalid base64 alphabet, non-JSON payload) yields common.ErrInvalidToken.
// No signature or expiry checks are performed.
func Decode(raw string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	return claims, nil
}

// Identity returns the profile identity key carried by the claims,
// preferring "sub" over "user_id". Returns common.ErrNoIdentity when
// neither is present.
func (c *Claims) Identity() (string, error) {
	if c.Subject != "" {
		return c.Subject, nil
	}
	if c.UserID != "" {
		return c.UserID, nil
	}
	return "", common.ErrNoIdentity
}
