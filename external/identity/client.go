package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/club-backoffice/internal/domain/user"
	"github.com/riskibarqy/club-backoffice/internal/platform/logging"
	"github.com/riskibarqy/club-backoffice/internal/platform/resilience"
	"github.com/riskibarqy/club-backoffice/internal/usecase"
	"github.com/valyala/fasthttp"
)

var errIdentityTransient = crerr.New("identity provider transient failure")

type ClientConfig struct {
	HTTPClient      *fasthttp.Client
	BaseURL         string
	UserPath        string
	APIKey          string
	Timeout         time.Duration
	CacheTTL        time.Duration
	CacheMaxEntries int
	CircuitBreaker  resilience.CircuitBreakerConfig
	Logger          *logging.Logger
}

// Client resolves bearer tokens to principals through the identity
// provider's user endpoint.
type Client struct {
	httpClient *fasthttp.Client
	userURL    string
	apiKey     string
	timeout    time.Duration
	cache      *inMemoryPrincipalCache
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "club-backoffice",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		}
	}
	return &Client{
		httpClient: httpClient,
		userURL:    buildURL(cfg.BaseURL, cfg.UserPath),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		timeout:    timeout,
		cache:      newInMemoryPrincipalCache(cfg.CacheTTL, cfg.CacheMaxEntries),
		breaker:    resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
		logger:     logger.Named("identity"),
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	key := hashToken(token)
	if principal, ok := c.cache.Get(key); ok {
		return principal, nil
	}

	out, err, _ := c.flight.Do(key, func() (any, error) {
		var principal user.Principal
		call := func() error {
			var callErr error
			principal, callErr = c.fetchUser(ctx, token)
			return callErr
		}

		var err error
		if c.breaker != nil {
			err = c.breaker.Execute(call, isCircuitFailure)
		} else {
			err = call()
		}
		if err != nil {
			return nil, err
		}
		c.cache.Set(key, principal)
		return principal, nil
	})
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "identity circuit breaker rejected request", "state", c.breaker.State())
			return user.Principal{}, fmt.Errorf("%w: identity provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		if crerr.Is(err, errIdentityTransient) {
			c.logger.WarnContext(ctx, "identity provider request failed", "error", err)
			return user.Principal{}, fmt.Errorf("%w: identity provider request failed", usecase.ErrDependencyUnavailable)
		}
		return user.Principal{}, err
	}

	principal, ok := out.(user.Principal)
	if !ok {
		return user.Principal{}, fmt.Errorf("unexpected principal type %T", out)
	}
	return principal, nil
}

func (c *Client) fetchUser(ctx context.Context, token string) (user.Principal, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.userURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return user.Principal{}, crerr.Wrap(ctx.Err(), "identity request deadline exceeded")
	}

	if err := c.httpClient.DoTimeout(req, resp, timeout); err != nil {
		return user.Principal{}, crerr.Mark(crerr.Wrapf(err, "request user from %s", c.userURL), errIdentityTransient)
	}

	status := resp.StatusCode()
	switch {
	case status == fasthttp.StatusUnauthorized || status == fasthttp.StatusForbidden:
		return user.Principal{}, fmt.Errorf("%w: token rejected by identity provider", usecase.ErrUnauthorized)
	case status >= 500 || status == fasthttp.StatusTooManyRequests:
		return user.Principal{}, crerr.Mark(crerr.Newf("identity provider status=%d", status), errIdentityTransient)
	case status != fasthttp.StatusOK:
		return user.Principal{}, crerr.Newf("identity provider status=%d", status)
	}

	var decoded userResponse
	if err := sonic.Unmarshal(resp.Body(), &decoded); err != nil {
		return user.Principal{}, crerr.Wrap(err, "decode identity user response")
	}
	if strings.TrimSpace(decoded.ID) == "" {
		return user.Principal{}, fmt.Errorf("%w: identity response has no user id", usecase.ErrUnauthorized)
	}

	return user.Principal{UserID: decoded.ID, Email: decoded.Email}, nil
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
