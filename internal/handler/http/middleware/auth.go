package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/sumitRND/PresenceBackend/internal/domain/auth"
	"github.com/sumitRND/PresenceBackend/internal/handler/http/response"
	"github.com/sumitRND/PresenceBackend/internal/pkg/jwt"
)

type contextKey string

const identityKey contextKey = "identity"

// ssoMaxAge bounds how old an X-SSO-User assertion may be.
const ssoMaxAge = 5 * time.Minute

// Identity is the authenticated caller, from either credential kind.
type Identity struct {
	Username       string
	EmployeeNumber string
	EmpClass       string
	ProjectCodes   []string
}

// IdentityFromContext returns the authenticated identity set by FlexibleAuth.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

// FlexibleAuth accepts either a bearer token or a short-lived X-SSO-User
// JSON assertion. Requests carrying neither are rejected.
func FlexibleAuth(tokenAuth *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenString := jwtauth.TokenFromHeader(r); tokenString != "" {
				token, err := jwtauth.VerifyToken(tokenAuth, tokenString)
				if err != nil {
					response.Unauthorized(w, "Invalid or expired token")
					return
				}

				claimsMap, err := token.AsMap(r.Context())
				if err != nil {
					response.Unauthorized(w, "Invalid token claims")
					return
				}
				claims, err := jwt.ClaimsFromMap(claimsMap)
				if err != nil {
					response.Unauthorized(w, "Invalid token claims")
					return
				}

				identity := Identity{
					Username:       claims.Username,
					EmployeeNumber: claims.EmployeeNumber,
					EmpClass:       claims.EmpClass,
				}
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, identity)))
				return
			}

			if header := r.Header.Get("X-SSO-User"); header != "" {
				var assertion auth.SSOAssertion
				if err := json.Unmarshal([]byte(header), &assertion); err != nil || assertion.Username == "" {
					response.Unauthorized(w, "Invalid SSO assertion")
					return
				}

				issued := time.UnixMilli(assertion.Timestamp)
				if time.Since(issued) > ssoMaxAge || issued.After(time.Now().Add(time.Minute)) {
					response.Unauthorized(w, "SSO assertion has expired")
					return
				}

				identity := Identity{
					Username:     assertion.Username,
					ProjectCodes: assertion.ProjectCodes,
				}
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, identity)))
				return
			}

			response.Unauthorized(w, "Authentication required")
		})
	}
}

// RequireHR only admits bearer identities with the HR class.
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Authentication required")
			return
		}
		if identity.EmpClass != "HR" {
			response.Forbidden(w, "HR access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
