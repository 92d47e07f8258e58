package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/PaquitoSoft/small-shop/pkg/config"
	"github.com/PaquitoSoft/small-shop/pkg/logger"
)

// Session resolves the shopper session from the signed session cookie,
// minting a fresh one when the cookie is absent or tampered with. The
// session id lands in the request context and on every log entry.
func Session(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	secret := []byte(cfg.Secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, ok := sessionIDFromCookie(r, cfg.CookieName, secret)
			if !ok {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    signSessionID(sessionID, secret),
					Path:     "/",
					MaxAge:   int(cfg.TTL.Seconds()),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionIDFromCookie(r *http.Request, cookieName string, secret []byte) (string, bool) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return "", false
	}
	sessionID, signature, found := strings.Cut(cookie.Value, ".")
	if !found || sessionID == "" {
		return "", false
	}
	expected := signature64(sessionID, secret)
	if subtle.ConstantTimeCompare([]byte(signature), []byte(expected)) != 1 {
		return "", false
	}
	return sessionID, true
}

func signSessionID(sessionID string, secret []byte) string {
	return sessionID + "." + signature64(sessionID, secret)
}

func signature64(sessionID string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(sessionID))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
