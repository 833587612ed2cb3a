package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/unrolled/render"
)

type contextKey string

const userIDKey contextKey = "auth_user_id"

// tokenAuth verifies bearer tokens on /api requests. Tokens are issued by
// the identity provider in front of this service; the only tokens generated
// here are for tests.
type tokenAuth struct {
	secret []byte
}

func newTokenAuth(secret string) (*tokenAuth, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &tokenAuth{secret: []byte(secret)}, nil
}

type userClaims struct {
	jwt.RegisteredClaims
}

func (a *tokenAuth) generate(userID int32, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := userClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(userID)),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.New().String(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// validate checks the signature and expiry and returns the user id carried
// in the subject claim.
func (a *tokenAuth) validate(tokenString string) (int32, error) {
	token, err := jwt.ParseWithClaims(tokenString, &userClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("error parsing token: %w", err)
	}

	claims, ok := token.Claims.(*userClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token claims")
	}
	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, fmt.Errorf("error parsing token subject: %w", err)
	}
	return int32(id), nil
}

func (a *tokenAuth) authenticate(rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				rnd.JSON(w, http.StatusUnauthorized, errorResponse{Error: "missing Authorization header"})
				return
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				rnd.JSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid Authorization format"})
				return
			}

			userID, err := a.validate(parts[1])
			if err != nil {
				rnd.JSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// userIDFromContext extracts the authenticated user id. It is zero only
// when the middleware did not run, which no /api route allows.
func userIDFromContext(ctx context.Context) int32 {
	id, _ := ctx.Value(userIDKey).(int32)
	return id
}
