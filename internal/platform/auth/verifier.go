// Package auth implements the Authorizer port with JWT bearer tokens.
//
// The HTTP adapter extracts the raw bearer token into the execution context;
// the Authorize middleware asks the Verifier whether the token grants the
// operation's scope. Scopes are carried as a space-separated "scope" claim,
// following the OAuth 2.0 convention.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/domain"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/ports"
)

// tokenKey is the unexported key type for the raw bearer token in context.
type tokenKey struct{}

// WithToken returns a child context carrying the raw bearer token. Called by
// front-end adapters before invoking an operation.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the raw bearer token, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}

// Compile-time interface checks.
var (
	_ ports.Authorizer = (*Verifier)(nil)
	_ ports.Authorizer = AllowAll{}
)

// claims is the token payload the verifier understands.
type claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// Verifier validates HMAC-signed JWTs and checks the requested scope against
// the token's scope claim. Safe for concurrent use; the verifier holds no
// per-request state.
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier creates a Verifier for tokens signed with the given shared
// secret. When issuer is non-empty, tokens must carry a matching iss claim.
func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

// Authorize checks that the context carries a valid token granting scope.
// All rejections unwrap to domain.ErrForbidden so front-end adapters map
// them to a client-fault signal.
func (v *Verifier) Authorize(ctx context.Context, scope string) error {
	raw, ok := TokenFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: missing bearer token", domain.ErrForbidden)
	}

	var c claims
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	if _, err := jwt.ParseWithClaims(raw, &c, v.keyFunc, opts...); err != nil {
		return fmt.Errorf("%w: invalid token: %v", domain.ErrForbidden, err)
	}

	if !hasScope(c.Scope, scope) {
		return fmt.Errorf("%w: token lacks scope %q", domain.ErrForbidden, scope)
	}
	return nil
}

func (v *Verifier) keyFunc(_ *jwt.Token) (any, error) {
	return v.secret, nil
}

// hasScope reports whether the space-separated granted set contains want.
func hasScope(granted, want string) bool {
	for _, s := range strings.Fields(granted) {
		if s == want {
			return true
		}
	}
	return false
}

// AllowAll is the no-auth Authorizer used when auth is disabled in config.
// Local profiles only.
type AllowAll struct{}

// Authorize always succeeds.
func (AllowAll) Authorize(context.Context, string) error { return nil }
