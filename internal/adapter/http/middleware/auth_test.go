package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/goexpense/internal/domain"
	"github.com/iho/goexpense/internal/infrastructure/auth"
)

type reasonCounter struct {
	reasons []string
}

func (c *reasonCounter) AuthFailed(reason string) {
	c.reasons = append(c.reasons, reason)
}

func TestAuthMiddleware(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Hour)
	token, err := manager.Generate(&domain.User{ID: "user-1", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	testCases := []struct {
		name       string
		header     string
		wantStatus int
		wantReason string
	}{
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + token, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantReason: "missing"},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantReason: "malformed"},
		{name: "bad token", header: "Bearer nope", wantStatus: http.StatusUnauthorized, wantReason: "invalid"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			counter := &reasonCounter{}
			var gotUser string
			handler := AuthMiddleware(manager, counter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser = UserIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rr.Code)
			}
			if tc.wantStatus == http.StatusOK && gotUser != "user-1" {
				t.Fatalf("expected user-1 in context, got %q", gotUser)
			}
			if tc.wantReason != "" && (len(counter.reasons) != 1 || counter.reasons[0] != tc.wantReason) {
				t.Fatalf("expected failure reason %q, got %v", tc.wantReason, counter.reasons)
			}
		})
	}
}

func TestLocalUser(t *testing.T) {
	testCases := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
	}{
		{name: "default owner", wantStatus: http.StatusOK, wantUser: domain.LocalUserID},
		{name: "header owner", header: "alice", wantStatus: http.StatusOK, wantUser: "alice"},
		{name: "invalid owner", header: "bad id!", wantStatus: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotUser string
			handler := LocalUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser = UserIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
			if tc.header != "" {
				req.Header.Set(UserIDHeader, tc.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rr.Code)
			}
			if gotUser != tc.wantUser {
				t.Fatalf("expected user %q, got %q", tc.wantUser, gotUser)
			}
		})
	}
}
