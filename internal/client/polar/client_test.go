package polar

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jabrena/polar-metrics/internal/config"
)

func newTestClient(t *testing.T, serverURL string) Client {
	t.Helper()

	cfg := &config.Config{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		MemberID:     "member-42",
		TokenURL:     serverURL + "/v2/oauth2/token",
		APIBaseURL:   serverURL,
	}

	client, err := NewClient(cfg)
	require.NoError(t, err)

	return client
}

func TestBasicAuthToken(t *testing.T) {
	t.Parallel()

	// base64("id:secret")
	assert.Equal(t, "aWQ6c2VjcmV0", BasicAuthToken("id", "secret"))
}

func TestExchangeAuthorizationCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		statusCode    int
		responseBody  string
		expectedErr   error
		expectedToken string
	}{
		{
			name:          "successful exchange",
			statusCode:    http.StatusOK,
			responseBody:  `{"access_token":"token-abc","token_type":"bearer","expires_in":473040000,"x_user_id":12345}`,
			expectedToken: "token-abc",
		},
		{
			name:         "response without access token",
			statusCode:   http.StatusOK,
			responseBody: `{"token_type":"bearer"}`,
			expectedErr:  ErrNoAccessToken,
		},
		{
			name:         "invalid or expired code",
			statusCode:   http.StatusBadRequest,
			responseBody: `{"error":"invalid_grant"}`,
			expectedErr:  ErrAuthorizationCodeRejected,
		},
		{
			name:         "wrong client credentials",
			statusCode:   http.StatusUnauthorized,
			responseBody: `{"error":"invalid_client"}`,
			expectedErr:  ErrClientCredentialsRejected,
		},
		{
			name:        "forbidden",
			statusCode:  http.StatusForbidden,
			expectedErr: ErrAccessForbidden,
		},
		{
			name:        "server error",
			statusCode:  http.StatusInternalServerError,
			expectedErr: ErrUnexpectedHTTPStatus,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v2/oauth2/token", r.URL.Path)
				assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
				assert.Equal(t,
					"Basic "+BasicAuthToken("test-client-id", "test-client-secret"),
					r.Header.Get("Authorization"))

				require.NoError(t, r.ParseForm())
				assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
				assert.Equal(t, "code-xyz", r.PostForm.Get("code"))

				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)

			token, err := client.ExchangeAuthorizationCode(context.Background(), "code-xyz")

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, token)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedToken, token.AccessToken)
			assert.Equal(t, int64(12345), token.PolarUserID)
		})
	}
}

func TestRegisterUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		statusCode      int
		expectedOutcome RegistrationOutcome
		expectedErr     error
	}{
		{
			name:            "new registration",
			statusCode:      http.StatusOK,
			expectedOutcome: RegistrationRegistered,
		},
		{
			name:            "already registered is success",
			statusCode:      http.StatusConflict,
			expectedOutcome: RegistrationAlreadyRegistered,
		},
		{
			name:            "consents not accepted",
			statusCode:      http.StatusForbidden,
			expectedOutcome: RegistrationConsentsNotAccepted,
			expectedErr:     ErrConsentsNotAccepted,
		},
		{
			name:            "server error",
			statusCode:      http.StatusInternalServerError,
			expectedOutcome: RegistrationFailed,
			expectedErr:     ErrUnexpectedHTTPStatus,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v3/users", r.URL.Path)
				assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))

				var payload map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
				assert.Equal(t, "member-42", payload["member-id"])

				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)

			outcome, err := client.RegisterUser(context.Background(), "token-abc", "member-42")

			assert.Equal(t, tt.expectedOutcome, outcome)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestGetUserInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		statusCode   int
		responseBody string
		expectedErr  error
		check        func(t *testing.T, userInfo *UserInfo)
	}{
		{
			name:       "full profile",
			statusCode: http.StatusOK,
			responseBody: `{
				"polar-user-id": 12345,
				"member-id": "member-42",
				"first-name": "Juan",
				"last-name": "Brena",
				"birthdate": "1980-01-01",
				"gender": "MALE",
				"weight": 72.5,
				"height": 178.0
			}`,
			check: func(t *testing.T, userInfo *UserInfo) {
				t.Helper()
				require.NotNil(t, userInfo.PolarUserID)
				assert.Equal(t, int64(12345), *userInfo.PolarUserID)
				require.NotNil(t, userInfo.FirstName)
				assert.Equal(t, "Juan", *userInfo.FirstName)
				require.NotNil(t, userInfo.Weight)
				assert.InDelta(t, 72.5, *userInfo.Weight, 0.001)
			},
		},
		{
			name:         "partial profile leaves missing fields nil",
			statusCode:   http.StatusOK,
			responseBody: `{"polar-user-id": 12345, "first-name": "Juan"}`,
			check: func(t *testing.T, userInfo *UserInfo) {
				t.Helper()
				require.NotNil(t, userInfo.FirstName)
				assert.Nil(t, userInfo.LastName)
				assert.Nil(t, userInfo.Birthdate)
				assert.Nil(t, userInfo.Weight)
				assert.Nil(t, userInfo.Height)
			},
		},
		{
			name:        "no content",
			statusCode:  http.StatusNoContent,
			expectedErr: ErrNoUserData,
		},
		{
			name:        "forbidden",
			statusCode:  http.StatusForbidden,
			expectedErr: ErrUserInfoForbidden,
		},
		{
			name:        "server error",
			statusCode:  http.StatusInternalServerError,
			expectedErr: ErrUnexpectedHTTPStatus,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/v3/users/12345", r.URL.Path)
				assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))

				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)

			userInfo, err := client.GetUserInfo(context.Background(), "token-abc", "12345")

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, userInfo)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, userInfo)
			tt.check(t, userInfo)
		})
	}
}

func TestGetUserInfo_Cache(t *testing.T) {
	t.Parallel()

	var requestCount int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requestCount++

		_, _ = w.Write([]byte(`{"polar-user-id": 12345}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	first, err := client.GetUserInfo(context.Background(), "token-abc", "12345")
	require.NoError(t, err)

	second, err := client.GetUserInfo(context.Background(), "token-abc", "12345")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, requestCount)
}

func TestGetUserInfo_TransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := newTestClient(t, server.URL)

	userInfo, err := client.GetUserInfo(context.Background(), "token-abc", "12345")
	require.ErrorIs(t, err, ErrTransport)
	assert.Nil(t, userInfo)
}

func TestFetchHeartRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		statusCode   int
		responseBody string
	}{
		{
			name:         "data available",
			statusCode:   http.StatusOK,
			responseBody: `{"polar_user":"https://www.polaraccesslink.com/v3/users/12345","heart_rates":[]}`,
		},
		{
			name:       "no data for the day",
			statusCode: http.StatusNoContent,
		},
		{
			name:         "server error",
			statusCode:   http.StatusInternalServerError,
			responseBody: `{"error":"boom"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/v3/users/continuous-heart-rate/2026-08-23", r.URL.Path)
				assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))

				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)

			result, err := client.FetchHeartRate(context.Background(), "token-abc", "2026-08-23")
			require.NoError(t, err)

			defer result.Body.Close()

			assert.Equal(t, tt.statusCode, result.StatusCode)

			body, err := io.ReadAll(result.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.responseBody, string(body))
		})
	}
}

func TestFetchHeartRate_TransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := newTestClient(t, server.URL)

	result, err := client.FetchHeartRate(context.Background(), "token-abc", "2026-08-23")
	require.ErrorIs(t, err, ErrTransport)
	assert.Nil(t, result)
}

func TestRegistrationOutcomeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "registered", RegistrationRegistered.String())
	assert.Equal(t, "already registered", RegistrationAlreadyRegistered.String())
	assert.Equal(t, "consents not accepted", RegistrationConsentsNotAccepted.String())
	assert.Equal(t, "failed", RegistrationFailed.String())
	assert.Equal(t, "unknown", RegistrationUnknown.String())
}
