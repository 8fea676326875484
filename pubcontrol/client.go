package pubcontrol

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	nullLog "github.com/sirupsen/logrus/hooks/test"
	"github.com/taskcluster/httpbackoff/v3"
)

// JWTLifetime is how long a publish token minted by a Client stays valid
// when the configured claims carry no "exp".
const JWTLifetime = time.Hour

// ReducedHTTPClient is the interface that wraps the functionality of
// http.Client that we actually use in Client.Publish.
type ReducedHTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// defaultHTTPClient is shared since http.Client is safe for concurrent use.
var defaultHTTPClient ReducedHTTPClient = &http.Client{}

var nullLogger, _ = nullLog.NewNullLogger()

var defaultBackoffClient = &httpbackoff.Client{
	BackOffSettings: backoff.NewExponentialBackOff(),
}

// Client publishes items to a single GRIP proxy publish endpoint.
type Client struct {
	// URI is the base URI of the endpoint; items are POSTed to URI/publish/.
	URI string
	// HTTPClient is used for requests instead of the default client, if set.
	HTTPClient ReducedHTTPClient
	// HTTPBackoffClient controls retries, if set. Defaults to exponential
	// backoff with the cenkalti/backoff defaults.
	HTTPBackoffClient *httpbackoff.Client
	// Logger receives per-publish log lines. Defaults to a null logger.
	Logger *logrus.Logger

	mu        sync.RWMutex
	basicUser string
	basicPass string
	jwtClaims jwt.MapClaims
	jwtKey    []byte
}

// NewClient returns a Client for the endpoint at uri with no authentication.
func NewClient(uri string) *Client {
	return &Client{URI: uri, Logger: nullLogger}
}

// SetAuthBasic makes the client authenticate with HTTP basic auth.
func (c *Client) SetAuthBasic(username, password string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.basicUser, c.basicPass = username, password
	c.jwtClaims, c.jwtKey = nil, nil
}

// SetAuthJWT makes the client authenticate with an HS256 bearer token built
// from claims and signed with key. A fresh token is minted for every publish.
func (c *Client) SetAuthJWT(claims jwt.MapClaims, key []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jwtClaims = jwt.MapClaims{}
	for k, v := range claims {
		c.jwtClaims[k] = v
	}
	c.jwtKey = key
	c.basicUser, c.basicPass = "", ""
}

// logger never writes c.Logger: Publish runs concurrently on one Client.
func (c *Client) logger() *logrus.Logger {
	if c.Logger == nil {
		return nullLogger
	}
	return c.Logger
}

// authorization returns the Authorization header value, or "" when the
// client is unauthenticated.
func (c *Client) authorization() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.jwtKey != nil {
		claims := jwt.MapClaims{}
		for k, v := range c.jwtClaims {
			claims[k] = v
		}
		if _, ok := claims["exp"]; !ok {
			claims["exp"] = time.Now().Add(JWTLifetime).Unix()
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.jwtKey)
		if err != nil {
			return "", errors.Wrap(err, "signing publish token")
		}
		return "Bearer " + token, nil
	}
	if c.basicUser != "" || c.basicPass != "" {
		req := &http.Request{Header: http.Header{}}
		req.SetBasicAuth(c.basicUser, c.basicPass)
		return req.Header.Get("Authorization"), nil
	}
	return "", nil
}

// publishBody builds {"items": [...]} with one copy of the item per channel.
func publishBody(channels []string, item *Item) ([]byte, error) {
	items := make([]map[string]any, 0, len(channels))
	for _, channel := range channels {
		export, err := item.Export()
		if err != nil {
			return nil, err
		}
		export["channel"] = channel
		items = append(items, export)
	}
	return json.Marshal(map[string]any{"items": items})
}

// Publish delivers item to every channel in channels. Intermittent failures
// are retried with exponential backoff until the backoff settings give up or
// ctx is done.
func (c *Client) Publish(ctx context.Context, channels []string, item *Item) error {
	switch {
	case item == nil:
		return ErrNoItem
	case len(channels) == 0:
		return ErrNoChannels
	case c.URI == "":
		return ErrNoURI
	}
	rawPayload, err := publishBody(channels, item)
	if err != nil {
		return err
	}
	auth, err := c.authorization()
	if err != nil {
		return err
	}
	publishURL := strings.TrimSuffix(c.URI, "/") + "/publish/"

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = defaultHTTPClient
	}
	backoffClient := c.HTTPBackoffClient
	if backoffClient == nil {
		backoffClient = defaultBackoffClient
	}

	httpCall := func() (*http.Response, error, error) {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, publishURL, bytes.NewReader(rawPayload))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "building publish request for %s", publishURL)
		}
		req.Header.Set("Content-Type", "application/json")
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		resp, err := httpClient.Do(req)
		// return cancelled error, if context was cancelled
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		// network errors are assumed to be intermittent
		return resp, err, nil
	}

	resp, attempts, err := backoffClient.Retry(httpCall)
	if resp != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}
	log := c.logger().WithFields(logrus.Fields{
		"uri":      c.URI,
		"channels": channels,
		"attempts": attempts,
	})
	if err != nil {
		log.WithError(err).Error("publish failed")
		return &PublishError{URI: c.URI, Attempts: attempts, Err: err}
	}
	log.Debug("published item")
	return nil
}
