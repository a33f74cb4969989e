package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired runs after jwtauth.Verifier and only lets access tokens that
// carry a company through.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if _, err := jwt.ClaimsFromToken(token); err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
