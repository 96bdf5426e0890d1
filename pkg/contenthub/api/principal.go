package api

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
)

// Authentication itself lives outside this core. The router verifies a JWT
// with jwtauth's Verifier/Authenticator pair; handlers only read the subject
// claim back as the authenticated author ID.

// NewTokenAuth builds the HS256 verifier used by the router middleware.
func NewTokenAuth(secret string) *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte(secret), nil)
}

// AuthorID returns the authenticated principal's user ID from the request
// context, taken from the token's "sub" claim.
func AuthorID(ctx context.Context) (uuid.UUID, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid subject claim: %w", err)
	}

	return id, nil
}
