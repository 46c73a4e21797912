package token

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/codex/server/dao"
	"github.com/dekarrin/codex/server/dao/inmem"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func Test_Get(t *testing.T) {
	testCases := []struct {
		name      string
		header    string
		expect    string
		expectErr bool
	}{
		{name: "bearer", header: "Bearer abc.def.ghi", expect: "abc.def.ghi"},
		{name: "lower-case scheme", header: "bearer abc.def.ghi", expect: "abc.def.ghi"},
		{name: "extra space", header: "  Bearer    abc.def.ghi ", expect: "abc.def.ghi"},
		{name: "missing", header: "", expectErr: true},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", expectErr: true},
		{name: "no token", header: "Bearer", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			req := httptest.NewRequest("GET", "/api/v1/info", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			actual, err := Get(req)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Generate_Validate(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	users := inmem.NewUsersRepository()
	user, err := users.Create(ctx, dao.User{Username: "dave", Password: "hashed"})
	if !assert.NoError(err) {
		return
	}

	tok, err := Generate(testSecret, user)
	if !assert.NoError(err) {
		return
	}

	actual, err := Validate(ctx, tok, testSecret, users)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(user.ID, actual.ID)

	// wrong secret
	_, err = Validate(ctx, tok, []byte("some other secret that is long enough"), users)
	assert.Error(err)

	// logging out invalidates the token
	user.LastLogoutTime = user.LastLogoutTime.Add(time.Hour)
	_, err = users.Update(ctx, user.ID, user)
	if !assert.NoError(err) {
		return
	}
	_, err = Validate(ctx, tok, testSecret, users)
	assert.Error(err)
}
