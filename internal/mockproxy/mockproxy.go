// Package mockproxy provides an in-process GRIP proxy publish endpoint for
// tests. It records published items, can enforce JWT or basic auth, and can
// be told to fail the next requests with given status codes.
package mockproxy

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/mux"
)

// Proxy is a fake publish endpoint served by an httptest.Server.
type Proxy struct {
	Server *httptest.Server

	mu        sync.Mutex
	jwtIss    string
	jwtKey    []byte
	basicUser string
	basicPass string
	queued    []int
	items     []map[string]any
	requests  int
}

// New starts a Proxy that is shut down when the test finishes.
func New(t *testing.T) *Proxy {
	t.Helper()
	p := &Proxy{}
	router := mux.NewRouter()
	router.HandleFunc("/publish/", p.publish).Methods(http.MethodPost)
	p.Server = httptest.NewServer(router)
	t.Cleanup(p.Server.Close)
	return p
}

// URL is the base URI clients should publish to.
func (p *Proxy) URL() string {
	return p.Server.URL
}

// RequireJWT rejects requests without an HS256 bearer token signed with key.
// If iss is not empty the token's "iss" claim must match it.
func (p *Proxy) RequireJWT(iss string, key []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jwtIss, p.jwtKey = iss, key
}

// RequireBasic rejects requests without matching basic auth credentials.
func (p *Proxy) RequireBasic(username, password string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.basicUser, p.basicPass = username, password
}

// QueueStatus makes the next len(codes) requests fail with the given codes,
// in order, without recording their items.
func (p *Proxy) QueueStatus(codes ...int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queued = append(p.queued, codes...)
}

// Items returns every item successfully published so far.
func (p *Proxy) Items() []map[string]any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]map[string]any(nil), p.items...)
}

// Requests returns how many publish requests were received.
func (p *Proxy) Requests() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requests
}

func (p *Proxy) publish(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests++

	if len(p.queued) > 0 {
		code := p.queued[0]
		p.queued = p.queued[1:]
		http.Error(w, fmt.Sprintf("queued %d response", code), code)
		return
	}
	if err := p.authorize(r); err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "expected application/json", http.StatusUnsupportedMediaType)
		return
	}
	var body struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p.items = append(p.items, body.Items...)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Published\n"))
}

func (p *Proxy) authorize(r *http.Request) error {
	if p.jwtKey != nil {
		tokenString := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return p.jwtKey, nil
		})
		if err != nil {
			return err
		}
		if p.jwtIss != "" && !claims.VerifyIssuer(p.jwtIss, true) {
			return fmt.Errorf("unexpected issuer %v", claims["iss"])
		}
	}
	if p.basicUser != "" {
		user, pass, ok := r.BasicAuth()
		if !ok || user != p.basicUser || pass != p.basicPass {
			return fmt.Errorf("bad basic auth credentials")
		}
	}
	return nil
}
