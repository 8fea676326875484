package pubcontrol

import (
	"context"
	"sync"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ClientConfig describes one publish endpoint. When both Iss and Key are
// set the client authenticates with a JWT whose "iss" claim is Iss.
type ClientConfig struct {
	URI string
	Iss string
	Key []byte
}

// PubControl publishes items to a set of clients.
type PubControl struct {
	// Logger is handed to clients created by ApplyConfig.
	Logger *logrus.Logger

	mu      sync.RWMutex
	clients []*Client
	pending sync.WaitGroup
}

// New returns a PubControl with one client per config.
func New(configs ...ClientConfig) *PubControl {
	pc := &PubControl{}
	pc.ApplyConfig(configs...)
	return pc
}

// ApplyConfig adds one client per config.
func (pc *PubControl) ApplyConfig(configs ...ClientConfig) {
	for _, config := range configs {
		client := NewClient(config.URI)
		if pc.Logger != nil {
			client.Logger = pc.Logger
		}
		if config.Iss != "" && config.Key != nil {
			client.SetAuthJWT(jwt.MapClaims{"iss": config.Iss}, config.Key)
		}
		pc.AddClient(client)
	}
}

// AddClient adds a client.
func (pc *PubControl) AddClient(client *Client) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.clients = append(pc.clients, client)
}

// RemoveAllClients drops every configured client.
func (pc *PubControl) RemoveAllClients() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.clients = nil
}

// Clients returns the configured clients.
func (pc *PubControl) Clients() []*Client {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return append([]*Client(nil), pc.clients...)
}

// Publish delivers item to channels on every client concurrently and waits
// for all of them. The first error encountered is returned.
func (pc *PubControl) Publish(ctx context.Context, channels []string, item *Item) error {
	if item == nil {
		return ErrNoItem
	}
	if len(channels) == 0 {
		return ErrNoChannels
	}
	g, ctx := errgroup.WithContext(ctx)
	for _, client := range pc.Clients() {
		client := client
		g.Go(func() error {
			return client.Publish(ctx, channels, item)
		})
	}
	return g.Wait()
}

// PublishAsync publishes in the background and calls callback, if not nil,
// with the outcome. Use Wait to block until all background publishes finish.
func (pc *PubControl) PublishAsync(ctx context.Context, channels []string, item *Item, callback func(error)) {
	pc.pending.Add(1)
	go func() {
		defer pc.pending.Done()
		err := pc.Publish(ctx, channels, item)
		if callback != nil {
			callback(err)
		}
	}()
}

// Wait blocks until every PublishAsync call has completed.
func (pc *PubControl) Wait() {
	pc.pending.Wait()
}
