package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex/resume-builder/internal/testutil"
)

func TestAuthHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		request        map[string]string
		setup          func()
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful registration",
			request: map[string]string{
				"username": "newuser",
				"email":    "new@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result testutil.AuthResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.Equal(t, "newuser", result.User.Username)
				assert.NotEmpty(t, result.Token)
			},
		},
		{
			name: "missing username",
			request: map[string]string{
				"email":    "new@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid email",
			request: map[string]string{
				"username": "someuser",
				"email":    "not-an-email",
				"password": "password123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "short password",
			request: map[string]string{
				"username": "someuser",
				"email":    "new@example.com",
				"password": "123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate username",
			request: map[string]string{
				"username": "existinguser",
				"email":    "unique@example.com",
				"password": "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().WithUsername("existinguser").Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "duplicate email",
			request: map[string]string{
				"username": "uniqueuser",
				"email":    "taken@example.com",
				"password": "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().WithEmail("taken@example.com").Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			body, _ := json.Marshal(tt.request)
			resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, rawPassword := testutil.NewUserBuilder().
		WithUsername("loginuser").
		Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		request        map[string]string
		expectedStatus int
	}{
		{
			name: "successful login",
			request: map[string]string{
				"username": user.Username,
				"password": rawPassword,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			request: map[string]string{
				"username": user.Username,
				"password": "wrongpassword",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown user",
			request: map[string]string{
				"username": "ghost",
				"password": "whatever",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "empty body",
			request:        map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.request)
			resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().
		WithUsername("currentuser").
		BuildAndAuthenticate(t, ts)

	t.Run("with valid token", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, ts.APIURL("/auth/me"), nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var user struct {
			Username string `json:"username"`
		}
		testutil.AssertJSONResponse(t, resp, &user)
		assert.Equal(t, "currentuser", user.Username)
	})

	t.Run("without token", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/auth/me"))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("with garbage token", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, ts.APIURL("/auth/me"), nil)
		req.Header.Set("Authorization", "Bearer not-a-token")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
