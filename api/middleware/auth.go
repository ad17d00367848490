package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mpalmerin/storefront-backend/api/responses"
	pkgAuth "github.com/mpalmerin/storefront-backend/pkg/auth"
	"github.com/mpalmerin/storefront-backend/pkg/config"
	pkgerrors "github.com/mpalmerin/storefront-backend/pkg/errors"
	"github.com/mpalmerin/storefront-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// verified identity. Every failure, missing header, malformed token, bad
// signature or unconfigured secret, answers 401.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithUser(r.Context(), claims.UserID, claims.UserName)
			if logg != nil {
				ctx = logg.WithUserID(ctx, strconv.FormatInt(claims.UserID, 10))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
