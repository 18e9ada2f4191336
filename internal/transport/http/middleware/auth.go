package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"conduit/internal/authz"
)

// Schemes accepted in the Authorization header, compared case-insensitively.
var acceptedSchemes = []string{"Token", "Bearer", "JWT"}

// TokenParser turns a raw token into an identity.
type TokenParser interface {
	Parse(raw string) (authz.Identity, error)
}

// IdentityHandlerFunc is a handler that receives the caller identity
// explicitly. Anonymous callers get authz.Anonymous.
type IdentityHandlerFunc func(w http.ResponseWriter, r *http.Request, id authz.Identity)

// Auth resolves the caller identity of each request.
type Auth struct {
	parser TokenParser
	log    *slog.Logger
}

func NewAuth(parser TokenParser, log *slog.Logger) *Auth {
	return &Auth{parser: parser, log: log}
}

// Identify returns the identity carried by the Authorization header. A
// missing header, unknown scheme or invalid token yields the anonymous
// identity; enforcement is left to the authorization rules.
func (a *Auth) Identify(r *http.Request) authz.Identity {
	raw, ok := ExtractToken(r.Header.Get("Authorization"))
	if !ok {
		return authz.Anonymous
	}

	id, err := a.parser.Parse(raw)
	if err != nil {
		a.log.Debug("ignoring invalid token", "error", err, "path", r.URL.Path)
		return authz.Anonymous
	}
	return id
}

// With adapts an IdentityHandlerFunc to http.HandlerFunc.
func (a *Auth) With(h IdentityHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h(w, r, a.Identify(r))
	}
}

// ExtractToken splits "<scheme> <token>" and checks the scheme.
func ExtractToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	for _, s := range acceptedSchemes {
		if strings.EqualFold(scheme, s) {
			return token, true
		}
	}
	return "", false
}
