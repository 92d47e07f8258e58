package middleware

import (
	"fmt"
	"net/http"

	"github.com/PaquitoSoft/small-shop/api/responses"
	pkgerrors "github.com/PaquitoSoft/small-shop/pkg/errors"
	"github.com/PaquitoSoft/small-shop/pkg/logger"
)

// Recoverer turns handler panics into 500 responses instead of dropped
// connections.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("panic: %v", rec))
					responses.WriteError(r.Context(), logg, w, err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
