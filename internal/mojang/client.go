// Package mojang provides a minimal client for the Mojang session server.
package mojang

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// baseURL is the root endpoint for the Mojang session server.
const baseURL = "https://sessionserver.mojang.com"

// resolveDelay is slept after every successful lookup. The session server has
// no published rate limit but throttles bursts; one request per 500ms stays
// comfortably under it. Failed lookups abort the run anyway, so they skip it.
const resolveDelay = 500 * time.Millisecond

// ErrNotFound is returned when the session server has no profile for a UUID.
var ErrNotFound = errors.New("mojang: profile not found")

// Resolver maps a player UUID to their current display name.
type Resolver interface {
	Resolve(uuid string) (string, error)
}

// Client is a rate-limited Mojang session server client.
type Client struct {
	baseURL string
	http    *http.Client
	delay   time.Duration
	sleep   func(time.Duration)
}

// NewClient returns a client against the public session server.
func NewClient() *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		delay:   resolveDelay,
		sleep:   time.Sleep,
	}
}

// profile holds the fields we need from /session/minecraft/profile.
type profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Resolve looks up the current display name for a player UUID.
//
// Returns ErrNotFound (wrapped) when the session server reports no profile
// (HTTP 204 or 404). After a successful lookup the client sleeps for its
// configured delay before returning, so sequential callers stay under the
// session server's burst limit; failed lookups return immediately.
func (c *Client) Resolve(uuid string) (string, error) {
	resp, err := c.http.Get(c.baseURL + "/session/minecraft/profile/" + uuid)
	if err != nil {
		return "", fmt.Errorf("mojang: lookup %s: %w", uuid, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// handled below
	case http.StatusNoContent, http.StatusNotFound:
		return "", fmt.Errorf("%w: %s", ErrNotFound, uuid)
	default:
		return "", fmt.Errorf("mojang: lookup %s: HTTP %d", uuid, resp.StatusCode)
	}

	var p profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return "", fmt.Errorf("mojang: decode profile %s: %w", uuid, err)
	}
	if p.Name == "" {
		return "", fmt.Errorf("mojang: profile %s has no name", uuid)
	}

	c.sleep(c.delay)
	return p.Name, nil
}
