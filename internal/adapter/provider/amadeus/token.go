package amadeus

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/itnr/itnr-api/internal/domain"
	"github.com/itnr/itnr-api/internal/infrastructure/timeutil"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Token lifetime settings.
const (
	tokenPath = "/v1/security/oauth2/token"

	// tokenExpirySkew renews the token this long before the provider expires it
	tokenExpirySkew = 30 * time.Second

	// defaultTokenLifetime is used when the token response has no expires_in
	defaultTokenLifetime = 30 * time.Minute

	// minTokenLifetime keeps short-lived tokens usable once the skew is applied
	minTokenLifetime = 5 * time.Second
)

// tokenCache holds the process-wide access token. Readers share an RLock;
// a single writer refreshes it and the others reuse its result.
type tokenCache struct {
	cfg        clientcredentials.Config
	httpClient *http.Client
	clock      timeutil.Clock

	mu      sync.RWMutex
	token   string
	expiry  time.Time
	fetches int
}

func newTokenCache(baseURL, clientID, clientSecret string, httpClient *http.Client, clock timeutil.Clock) *tokenCache {
	return &tokenCache{
		cfg: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     baseURL + tokenPath,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		httpClient: httpClient,
		clock:      clock,
	}
}

// Get returns a valid access token, fetching a new one when needed.
func (c *tokenCache) Get(ctx context.Context) (string, error) {
	c.mu.RLock()
	token, valid := c.token, c.validLocked()
	c.mu.RUnlock()
	if valid {
		return token, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock
	if c.validLocked() {
		return c.token, nil
	}

	return c.fetchLocked(ctx)
}

// Invalidate drops the cached token so that the next Get fetches a new one.
func (c *tokenCache) Invalidate() {
	c.mu.Lock()
	c.token = ""
	c.expiry = time.Time{}
	c.mu.Unlock()
}

// Fetches returns how many tokens were requested from the provider.
func (c *tokenCache) Fetches() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetches
}

func (c *tokenCache) validLocked() bool {
	return c.token != "" && c.clock.Now().Before(c.expiry)
}

func (c *tokenCache) fetchLocked(ctx context.Context) (string, error) {
	c.fetches++

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := c.cfg.Token(ctx)
	if err != nil {
		return "", classifyTokenError(err)
	}
	if tok.AccessToken == "" {
		return "", domain.NewProviderResponseError(ProviderName, http.StatusOK, "token response without access_token")
	}

	c.token = tok.AccessToken
	c.expiry = c.clock.Now().Add(usableLifetime(tok.ExpiresIn))
	return c.token, nil
}

// usableLifetime turns expires_in seconds into the time a token is served
// from cache, renewing tokenExpirySkew early but never below minTokenLifetime.
func usableLifetime(expiresIn int64) time.Duration {
	lifetime := defaultTokenLifetime
	if expiresIn > 0 {
		lifetime = time.Duration(expiresIn) * time.Second
	}
	return max(lifetime-tokenExpirySkew, minTokenLifetime)
}

// classifyTokenError maps token endpoint failures. 400, 401 and 403 mean our
// credentials were rejected; the provider answers invalid_client with any of them.
func classifyTokenError(err error) error {
	var re *oauth2.RetrieveError
	if !errors.As(err, &re) || re.Response == nil {
		return err
	}

	status := re.Response.StatusCode
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized:
		return domain.NewProviderAuthError(ProviderName, http.StatusUnauthorized, fmt.Errorf("token: %s", errorDetail(re.Body)))
	case http.StatusForbidden:
		return domain.NewProviderAuthError(ProviderName, http.StatusForbidden, fmt.Errorf("token: %s", errorDetail(re.Body)))
	default:
		return domain.NewProviderResponseError(ProviderName, status, "token: "+errorDetail(re.Body))
	}
}
