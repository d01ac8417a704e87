package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"qd-calendar-go/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and validates HS256 access and refresh tokens.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenManager(cfg config.JWTConfig) *TokenManager {
	return &TokenManager{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
}

func (m *TokenManager) GenerateAccess(userID uint) (string, error) {
	return m.generate(userID, tokenTypeAccess, m.accessTTL)
}

func (m *TokenManager) GenerateRefresh(userID uint) (string, error) {
	return m.generate(userID, tokenTypeRefresh, m.refreshTTL)
}

func (m *TokenManager) generate(userID uint, tokenType string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(userID), 10),
		"type": tokenType,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *TokenManager) ParseAccess(token string) (uint, error) {
	return m.parse(token, tokenTypeAccess)
}

func (m *TokenManager) ParseRefresh(token string) (uint, error) {
	return m.parse(token, tokenTypeRefresh)
}

func (m *TokenManager) parse(raw, wantType string) (uint, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	if tokenType, _ := claims["type"].(string); tokenType != wantType {
		return 0, ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return 0, ErrInvalidToken
	}
	userID, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(userID), nil
}

// RoleChecker resolves the role of an authenticated user.
type RoleChecker interface {
	GetRole(ctx context.Context, userID uint) (string, error)
}

type Auth struct {
	tokens *TokenManager
	roles  RoleChecker
}

func NewAuth(tokens *TokenManager, roles RoleChecker) *Auth {
	return &Auth{tokens: tokens, roles: roles}
}

// Middleware rejects requests without a valid access token.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		userID, err := a.tokens.ParseAccess(token)
		if err != nil {
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// Optional attaches the user ID when a valid token is present and lets
// the request through either way.
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := bearerToken(r.Header.Get("Authorization")); ok {
			if userID, err := a.tokens.ParseAccess(token); err == nil {
				r = r.WithContext(WithUserID(r.Context(), userID))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin allows only authenticated admins through. It must run
// after Middleware.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			unauthorized(w)
			return
		}

		role, err := a.roles.GetRole(r.Context(), userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
		if role != "admin" {
			writeError(w, http.StatusForbidden, "forbidden", "admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

type contextKey int

const userIDKey contextKey = iota

func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(userIDKey).(uint)
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
