package polar

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jabrena/polar-metrics/internal/config"
	"github.com/jabrena/polar-metrics/internal/logger"
	http_transport "github.com/jabrena/polar-metrics/internal/transport/http"
	"github.com/jabrena/polar-metrics/internal/utils"
)

// Client defines the interface for interacting with the Polar AccessLink API.
type Client interface {
	// ExchangeAuthorizationCode trades a single-use OAuth2 authorization code
	// for a bearer access token.
	ExchangeAuthorizationCode(ctx context.Context, authorizationCode string) (*TokenExchange, error)
	// RegisterUser registers the member with the API partner.
	// An already-registered member is reported as success, not failure.
	RegisterUser(ctx context.Context, accessToken, memberID string) (RegistrationOutcome, error)
	// GetUserInfo retrieves the profile of a registered member.
	GetUserInfo(ctx context.Context, accessToken, userID string) (*UserInfo, error)
	// FetchHeartRate requests the continuous heart-rate payload for one date (YYYY-MM-DD).
	FetchHeartRate(ctx context.Context, accessToken, date string) (*HeartRateResult, error)
}

// ClientImpl implements the Client interface for interacting with the Polar AccessLink API.
type ClientImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// tokenURL is the OAuth2 token endpoint.
	tokenURL string
	// baseURL is the base URL for REST API requests.
	baseURL string
	// httpClient is the HTTP client for most requests.
	httpClient *http.Client
	// userInfoClient is a dedicated HTTP client for the user endpoint with an
	// explicit connect deadline on top of the overall request deadline.
	userInfoClient *http.Client
	// probeClient is a short-deadline client used only to check host
	// reachability after a transport failure.
	probeClient *http.Client
	// userInfoCache caches user profiles to avoid re-fetching the same user
	// within one invocation.
	userInfoCache *lru.Cache[string, *UserInfo]
}

const (
	// usersURI is the URI path for member registration and user profile endpoints.
	usersURI = "v3/users"
	// heartRateURI is the URI path for the per-day continuous heart-rate endpoint.
	heartRateURI = "v3/users/continuous-heart-rate"
)

const (
	// userInfoCacheSize defines the maximum number of cached user profiles.
	// A single invocation touches one user, so a handful is plenty.
	userInfoCacheSize = 16
	// secretPreviewLength is how many characters of codes and tokens reach the logs.
	secretPreviewLength = 10
	// errorBodyPreviewLimit caps how much of an error response body is read for diagnostics.
	errorBodyPreviewLimit = 2048
)

// NewClient creates and returns a new instance of ClientImpl.
// It initializes the HTTP clients with the provided configuration.
func NewClient(cfg *config.Config) (Client, error) {
	baseURL, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}

	userAgentProvider := utils.NewSimpleUserAgentProvider(http_transport.DefaultUserAgent)

	httpClient := &http.Client{
		Transport: http_transport.NewUserAgentInjector(
			http_transport.NewLogTransport(http.DefaultTransport, 0),
			userAgentProvider),
		Timeout: http_transport.DefaultTimeout,
	}

	// The user endpoint gets its own transport so a dead host is reported as
	// a connect failure quickly instead of eating the whole request budget.
	userInfoTransport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: http_transport.UserInfoConnectTimeout,
		}).DialContext,
	}

	userInfoClient := &http.Client{
		Transport: http_transport.NewUserAgentInjector(
			http_transport.NewLogTransport(userInfoTransport, 0),
			userAgentProvider),
		Timeout: http_transport.DefaultTimeout,
	}

	probeClient := &http.Client{
		Transport: http_transport.NewUserAgentInjector(http.DefaultTransport, userAgentProvider),
		Timeout:   http_transport.ReachabilityProbeTimeout,
	}

	userInfoCache, err := lru.New[string, *UserInfo](userInfoCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create user info cache: %w", err)
	}

	client := &ClientImpl{
		cfg:            cfg,
		tokenURL:       cfg.TokenURL,
		baseURL:        baseURL.String(),
		httpClient:     httpClient,
		userInfoClient: userInfoClient,
		probeClient:    probeClient,
		userInfoCache:  userInfoCache,
	}

	return client, nil
}

// BasicAuthToken encodes the client credentials for the token endpoint's
// Basic authorization header.
func BasicAuthToken(clientID, clientSecret string) string {
	return base64.StdEncoding.EncodeToString([]byte(clientID + ":" + clientSecret))
}

// ExchangeAuthorizationCode trades a single-use OAuth2 authorization code
// for a bearer access token.
func (c *ClientImpl) ExchangeAuthorizationCode(
	ctx context.Context,
	authorizationCode string,
) (*TokenExchange, error) {
	logger.Infof(ctx, "Exchanging authorization code '%s' for an access token",
		utils.Truncate(authorizationCode, secretPreviewLength))

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", authorizationCode)

	request, err := http.NewRequestWithContext(ctx,
		http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	request.Header.Set("Authorization",
		"Basic "+BasicAuthToken(c.cfg.ClientID, c.cfg.ClientSecret))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	defer response.Body.Close()

	switch response.StatusCode {
	case http.StatusOK:
		return c.decodeTokenResponse(ctx, response.Body)
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", ErrAuthorizationCodeRejected, readErrorBody(response.Body))
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: %s", ErrClientCredentialsRejected, readErrorBody(response.Body))
	case http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrAccessForbidden, readErrorBody(response.Body))
	default:
		return nil, fmt.Errorf("%w: %d: %s",
			ErrUnexpectedHTTPStatus, response.StatusCode, readErrorBody(response.Body))
	}
}

func (c *ClientImpl) decodeTokenResponse(ctx context.Context, body io.Reader) (*TokenExchange, error) {
	var token TokenExchange
	if err := json.NewDecoder(body).Decode(&token); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	if token.AccessToken == "" {
		return nil, ErrNoAccessToken
	}

	logger.Infof(ctx, "Received access token '%s' for Polar user %d",
		utils.Truncate(token.AccessToken, secretPreviewLength), token.PolarUserID)

	return &token, nil
}

// RegisterUser registers the member with the API partner.
// Registration is idempotent: a 409 means an earlier run already did it
// and is treated as success.
func (c *ClientImpl) RegisterUser(
	ctx context.Context,
	accessToken, memberID string,
) (RegistrationOutcome, error) {
	route, err := url.JoinPath(c.baseURL, usersURI)
	if err != nil {
		return RegistrationUnknown, err
	}

	payload, err := json.Marshal(map[string]string{"member-id": memberID})
	if err != nil {
		return RegistrationUnknown, fmt.Errorf("failed to encode registration payload: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, route, bytes.NewReader(payload))
	if err != nil {
		return RegistrationUnknown, err
	}

	request.Header.Set("Authorization", "Bearer "+accessToken)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return RegistrationUnknown, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	defer response.Body.Close()

	switch response.StatusCode {
	case http.StatusOK:
		logger.Infof(ctx, "Member '%s' registered", memberID)

		return RegistrationRegistered, nil
	case http.StatusConflict:
		logger.Infof(ctx, "Member '%s' is already registered, skipping", memberID)

		return RegistrationAlreadyRegistered, nil
	case http.StatusForbidden:
		return RegistrationConsentsNotAccepted,
			fmt.Errorf("%w: %s", ErrConsentsNotAccepted, readErrorBody(response.Body))
	default:
		return RegistrationFailed, fmt.Errorf("%w: %d: %s",
			ErrUnexpectedHTTPStatus, response.StatusCode, readErrorBody(response.Body))
	}
}

// GetUserInfo retrieves the profile of a registered member.
// Uses an LRU cache to avoid re-fetching the same user within one invocation.
func (c *ClientImpl) GetUserInfo(ctx context.Context, accessToken, userID string) (*UserInfo, error) {
	if cached, ok := c.userInfoCache.Get(userID); ok {
		logger.Debugf(ctx, "User info cache hit for ID: %s", userID)

		return cached, nil
	}

	route, err := url.JoinPath(c.baseURL, usersURI, userID)
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, route, http.NoBody)
	if err != nil {
		return nil, err
	}

	request.Header.Set("Authorization", "Bearer "+accessToken)
	request.Header.Set("Accept", "application/json")

	response, err := c.userInfoClient.Do(request)
	if err != nil {
		// No HTTP response at all. Probe the host once so the log tells the
		// user whether the API is down or the failure is request-specific.
		c.probeHostReachability(ctx)

		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	defer response.Body.Close()

	switch response.StatusCode {
	case http.StatusOK:
		var userInfo UserInfo
		if err = json.NewDecoder(response.Body).Decode(&userInfo); err != nil {
			return nil, fmt.Errorf("failed to decode user info: %w", err)
		}

		c.userInfoCache.Add(userID, &userInfo)

		return &userInfo, nil
	case http.StatusNoContent:
		return nil, ErrNoUserData
	case http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrUserInfoForbidden, readErrorBody(response.Body))
	default:
		return nil, fmt.Errorf("%w: %d: %s",
			ErrUnexpectedHTTPStatus, response.StatusCode, readErrorBody(response.Body))
	}
}

// FetchHeartRate requests the continuous heart-rate payload for one date.
// Every HTTP status is returned to the caller as data; only transport
// failures surface as errors. The caller must close the result body.
func (c *ClientImpl) FetchHeartRate(
	ctx context.Context,
	accessToken, date string,
) (*HeartRateResult, error) {
	route, err := url.JoinPath(c.baseURL, heartRateURI, date)
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, route, http.NoBody)
	if err != nil {
		return nil, err
	}

	request.Header.Set("Authorization", "Bearer "+accessToken)
	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	return &HeartRateResult{
		StatusCode:    response.StatusCode,
		ContentLength: response.ContentLength,
		Body:          response.Body,
	}, nil
}

// probeHostReachability issues a cheap HEAD request against the API base URL
// and logs the result. It never fails the caller: the probe is diagnostics only.
func (c *ClientImpl) probeHostReachability(ctx context.Context) {
	request, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, http.NoBody)
	if err != nil {
		return
	}

	response, err := c.probeClient.Do(request)
	if err != nil {
		logger.Warnf(ctx, "API host %s is unreachable: %v", c.baseURL, err)

		return
	}

	response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	logger.Infof(ctx, "API host %s is reachable (HTTP %d), the failure is request-specific",
		c.baseURL, response.StatusCode)
}

// readErrorBody extracts a bounded preview of an error response body for diagnostics.
func readErrorBody(body io.Reader) string {
	preview, err := io.ReadAll(io.LimitReader(body, errorBodyPreviewLimit))
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(preview))
}
