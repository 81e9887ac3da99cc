package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/platform/ctxutil"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims JWTClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestSetContextFromToken(t *testing.T) {
	svc, err := NewAuthService(logger.Nop(), "shh")
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	userID := uuid.New()
	valid := JWTClaims{
		Email: "a@b.c",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	ctx, err := svc.SetContextFromToken(context.Background(), signToken(t, "shh", jwt.SigningMethodHS256, valid))
	if err != nil {
		t.Fatalf("valid token: %v", err)
	}
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID != userID || rd.Email != "a@b.c" {
		t.Fatalf("request data: %+v", rd)
	}

	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	badSubject := valid
	badSubject.Subject = "not-a-uuid"
	noExpiry := valid
	noExpiry.ExpiresAt = nil

	cases := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "wrong secret", token: signToken(t, "other", jwt.SigningMethodHS256, valid)},
		{name: "wrong alg", token: signToken(t, "shh", jwt.SigningMethodHS512, valid)},
		{name: "expired", token: signToken(t, "shh", jwt.SigningMethodHS256, expired)},
		{name: "no expiry", token: signToken(t, "shh", jwt.SigningMethodHS256, noExpiry)},
		{name: "bad subject", token: signToken(t, "shh", jwt.SigningMethodHS256, badSubject)},
	}
	for _, tc := range cases {
		if _, err := svc.SetContextFromToken(context.Background(), tc.token); err == nil {
			t.Fatalf("%s: want error", tc.name)
		}
	}

	if _, err := NewAuthService(logger.Nop(), " "); err == nil {
		t.Fatalf("want error for empty secret")
	}
}
