package result

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Result_WriteResponse(t *testing.T) {
	testCases := []struct {
		name         string
		r            Result
		expectStatus int
		expectBody   string
		expectHdrs   map[string]string
	}{
		{
			name:         "ok with body",
			r:            OK(map[string]int{"attempts": 2}),
			expectStatus: http.StatusOK,
			expectBody:   `{"attempts":2}`,
			expectHdrs:   map[string]string{"Content-Type": "application/json"},
		},
		{
			name:         "no content",
			r:            NoContent(),
			expectStatus: http.StatusNoContent,
			expectBody:   "",
		},
		{
			name:         "bad request",
			r:            BadRequest("rule is malformed", "parse failed: %s", "bad arrow"),
			expectStatus: http.StatusBadRequest,
			expectBody:   `{"error":"rule is malformed","status":400}`,
		},
		{
			name:         "unauthorized sets auth header",
			r:            Unauthorized(""),
			expectStatus: http.StatusUnauthorized,
			expectBody:   `{"error":"You are not authorized to do that","status":401}`,
			expectHdrs:   map[string]string{"WWW-Authenticate": `Bearer realm="Codex server", charset="utf-8"`},
		},
		{
			name:         "text error",
			r:            TextErr(http.StatusTeapot, "short and stout", "teapot"),
			expectStatus: http.StatusTeapot,
			expectBody:   "short and stout",
			expectHdrs:   map[string]string{"Content-Type": "text/plain; charset=utf-8"},
		},
		{
			name:         "redirect",
			r:            Redirection("/api/v1/puzzles"),
			expectStatus: http.StatusPermanentRedirect,
			expectBody:   "",
			expectHdrs:   map[string]string{"Location": "/api/v1/puzzles"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			w := httptest.NewRecorder()

			tc.r.WriteResponse(w)

			assert.Equal(tc.expectStatus, w.Code)
			assert.Equal(tc.expectBody, w.Body.String())
			for k, v := range tc.expectHdrs {
				assert.Equal(v, w.Header().Get(k), "header %s", k)
			}
		})
	}
}

func Test_Result_WithHeader_doesNotShare(t *testing.T) {
	assert := assert.New(t)

	base := OK("x").WithHeader("X-One", "1")
	a := base.WithHeader("X-Two", "2")
	b := base.WithHeader("X-Three", "3")

	assert.Len(base.hdrs, 1)
	assert.Equal([2]string{"X-Two", "2"}, a.hdrs[1])
	assert.Equal([2]string{"X-Three", "3"}, b.hdrs[1])
}

func Test_Result_WriteResponse_unpopulatedPanics(t *testing.T) {
	assert := assert.New(t)
	assert.Panics(func() {
		Result{}.WriteResponse(httptest.NewRecorder())
	})
}
