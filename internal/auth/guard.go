package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	// CookieName is the cookie holding the session token.
	CookieName = "auth-token"
	// LoginPath is where unauthenticated navigation is redirected.
	LoginPath = "/login"
	// APIPrefix marks paths the guard lets through; API handlers check
	// credentials themselves.
	APIPrefix = "/api/"
)

type usernameKey struct{}

// WithUsername returns ctx carrying the authenticated username.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey{}, username)
}

// UsernameFrom returns the username stored by the guard.
func UsernameFrom(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(usernameKey{}).(string)
	return name, ok && name != ""
}

// TokenFromRequest returns the session token from the auth cookie or an
// Authorization: Bearer header. fromCookie reports where it came from.
func TokenFromRequest(r *http.Request) (token string, fromCookie bool) {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value, true
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")), false
	}
	return "", false
}

// Guard redirects navigation without a valid token to LoginPath. The login
// path and anything under APIPrefix pass through untouched. An invalid
// cookie is cleared on the redirect.
func Guard(tokens *Tokens, log *zap.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == LoginPath || strings.HasPrefix(path, APIPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			token, fromCookie := TokenFromRequest(r)
			if token == "" {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			username, err := tokens.Verify(token)
			if err != nil {
				log.Info("rejected session token",
					zap.String("path", path),
					zap.String("ip", r.RemoteAddr),
					zap.Error(err))
				if fromCookie {
					ClearCookie(w)
				}
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUsername(r.Context(), username)))
		})
	}
}

// SetCookie stores token in the session cookie.
func SetCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
