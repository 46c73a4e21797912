package middle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/codex/server/dao"
	"github.com/dekarrin/codex/server/dao/inmem"
	"github.com/dekarrin/codex/server/token"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func Test_AuthHandler(t *testing.T) {
	users := inmem.NewUsersRepository()
	user, err := users.Create(context.Background(), dao.User{Username: "rose", Password: "hashed"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	tok, err := token.Generate(testSecret, user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	testCases := []struct {
		name           string
		required       bool
		authHeader     string
		expectStatus   int
		expectLoggedIn bool
		expectUser     string
	}{
		{
			name:         "required, no token",
			required:     true,
			expectStatus: http.StatusUnauthorized,
		},
		{
			name:         "required, bad token",
			required:     true,
			authHeader:   "Bearer not-a-jwt",
			expectStatus: http.StatusUnauthorized,
		},
		{
			name:           "required, good token",
			required:       true,
			authHeader:     "Bearer " + tok,
			expectStatus:   http.StatusOK,
			expectLoggedIn: true,
			expectUser:     "rose",
		},
		{
			name:         "optional, no token",
			expectStatus: http.StatusOK,
			expectUser:   "guest",
		},
		{
			name:           "optional, good token",
			authHeader:     "Bearer " + tok,
			expectStatus:   http.StatusOK,
			expectLoggedIn: true,
			expectUser:     "rose",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			var gotLoggedIn bool
			var gotUser dao.User
			next := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				gotLoggedIn = req.Context().Value(AuthLoggedIn).(bool)
				gotUser = req.Context().Value(AuthUser).(dao.User)
				w.WriteHeader(http.StatusOK)
			})

			mw := OptionalAuth
			if tc.required {
				mw = RequireAuth
			}
			h := mw(users, testSecret, 0, dao.User{Username: "guest"})(next)

			req := httptest.NewRequest("GET", "/api/v1/puzzles", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			assert.Equal(tc.expectStatus, w.Code)
			if tc.expectStatus == http.StatusOK {
				assert.Equal(tc.expectLoggedIn, gotLoggedIn)
				assert.Equal(tc.expectUser, gotUser.Username)
			}
		})
	}
}
