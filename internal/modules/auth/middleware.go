package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/palspantry/pantry-backend/internal/modules/owner"
)

type contextKey string

const principalKey contextKey = "principal_id"

// PrincipalFromContext returns the authenticated principal id, if any.
func PrincipalFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(principalKey).(int64)
	return id, ok
}

// OwnerOnly returns middleware that rejects requests without a valid
// bearer token issued to the registered owner.
func OwnerOnly(svc Service, owners owner.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "missing bearer token")
				return
			}
			principalID, err := svc.ParseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}
			isOwner, err := owners.IsOwner(r.Context(), principalID)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": "storage failure"})
				return
			}
			if !isOwner {
				unauthorized(w, "owner access required")
				return
			}
			ctx := context.WithValue(r.Context(), principalKey, principalID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
