package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/jwt"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := jwt.ClaimsFromContext(r.Context())
		if err != nil {
			response.HandleError(w, response.ErrInvalidToken)
			return
		}

		if !claims.IsAdmin() {
			response.HandleError(w, response.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
