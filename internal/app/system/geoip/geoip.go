// Package geoip resolves visitor IP addresses to an approximate location
// using the ip-api.com JSON endpoint. Results are cached in a bounded LRU.
package geoip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultEndpoint is the free ip-api.com JSON API.
const DefaultEndpoint = "http://ip-api.com/json"

// ErrSkipped is returned for addresses that are never looked up
// (unknown, loopback, private, link-local).
var ErrSkipped = errors.New("geoip: address not eligible for lookup")

// Location is the subset of the lookup response stored on a visit.
type Location struct {
	Country string
	City    string
	Region  string
}

type apiResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Country    string `json:"country"`
	City       string `json:"city"`
	RegionName string `json:"regionName"`
}

// Client performs lookups. It is safe for concurrent use.
type Client struct {
	endpoint string
	http     *http.Client
	cache    *lru.Cache[string, Location]
}

// New builds a Client. cacheSize <= 0 uses 1024 entries.
func New(endpoint string, cacheSize int) (*Client, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	cache, err := lru.New[string, Location](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     &http.Client{Timeout: 5 * time.Second},
		cache:    cache,
	}, nil
}

// Lookup returns the location for ip. Ineligible addresses return ErrSkipped
// without any network traffic.
func (c *Client) Lookup(ctx context.Context, ip string) (Location, error) {
	if !IsPublic(ip) {
		return Location{}, ErrSkipped
	}
	if loc, ok := c.cache.Get(ip); ok {
		return loc, nil
	}

	u := fmt.Sprintf("%s/%s?fields=%s", c.endpoint, url.PathEscape(ip), url.QueryEscape("status,message,country,city,regionName"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Location{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("geoip request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("geoip: unexpected status %d", resp.StatusCode)
	}
	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Location{}, fmt.Errorf("geoip decode: %w", err)
	}
	if body.Status == "fail" {
		return Location{}, fmt.Errorf("geoip: %s", body.Message)
	}

	loc := Location{Country: body.Country, City: body.City, Region: body.RegionName}
	c.cache.Add(ip, loc)
	return loc, nil
}

// IsPublic reports whether ip is a routable address worth looking up.
func IsPublic(ip string) bool {
	ip = strings.TrimSpace(ip)
	if ip == "" || ip == "unknown" {
		return false
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return !(parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() ||
		parsed.IsLinkLocalUnicast() || parsed.IsLinkLocalMulticast())
}
