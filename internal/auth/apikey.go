package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Await-d/maple-blog-sub003/internal/models"
)

type APIKeyMiddleware struct {
	db         *pgxpool.Pool
	headerName string
}

func NewAPIKeyMiddleware(db *pgxpool.Pool, headerName string) *APIKeyMiddleware {
	return &APIKeyMiddleware{db: db, headerName: headerName}
}

// Authenticate resolves the API key header to a principal. Requests
// without the header pass through untouched so the JWT middleware can
// have its turn; requests with an unknown or expired key are rejected.
func (m *APIKeyMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(m.headerName)
		if key == "" || m.db == nil {
			next.ServeHTTP(w, r)
			return
		}

		hash := HashAPIKey(key)

		var ak models.APIKey
		err := m.db.QueryRow(r.Context(),
			`SELECT id, key_hash, name, role, expires_at, created_at
			 FROM api_keys WHERE key_hash = $1`, hash,
		).Scan(&ak.ID, &ak.KeyHash, &ak.Name, &ak.Role, &ak.ExpiresAt, &ak.CreatedAt)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid API key")
			return
		}

		if ak.ExpiresAt != nil && ak.ExpiresAt.Before(time.Now()) {
			writeError(w, http.StatusUnauthorized, "API key expired")
			return
		}

		// Detached from the request context, which is cancelled as soon
		// as the handler returns.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			m.db.Exec(ctx, "UPDATE api_keys SET last_used_at = $1 WHERE id = $2", time.Now(), ak.ID)
		}()

		p := &Principal{ID: ak.ID, Name: ak.Name, Role: ak.Role}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

func HashAPIKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:])
}
