package livesync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rileyhilliard/hwmon/internal/errors"
	"github.com/rileyhilliard/hwmon/internal/telemetry"
)

// maxBody caps how much of a response body is read.
const maxBody = 32 << 20

// Fetcher performs the pull side of synchronization.
type Fetcher interface {
	// FetchLatest returns the latest sample of every known host.
	FetchLatest(ctx context.Context) (map[string]telemetry.Sample, error)
	// FetchHost returns up to limit samples for hostname, oldest first.
	FetchHost(ctx context.Context, hostname string, limit int) (telemetry.HostHistory, error)
}

// Stream is an open push channel.
type Stream interface {
	// Read blocks until the next frame arrives or the stream fails.
	Read() ([]byte, error)
	// Close may be called concurrently with Read to unblock it.
	Close() error
}

// Dialer opens push channels.
type Dialer interface {
	Dial(ctx context.Context) (Stream, error)
}

// HTTPFetcher talks to the telemetry server's REST endpoints.
type HTTPFetcher struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPFetcher creates a fetcher for the server at baseURL.
func NewHTTPFetcher(baseURL string, timeout time.Duration) (*HTTPFetcher, error) {
	u, err := parseServerURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &HTTPFetcher{
		base:   u,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// FetchLatest calls GET /api/latest.
func (f *HTTPFetcher) FetchLatest(ctx context.Context) (map[string]telemetry.Sample, error) {
	body, err := f.get(ctx, "/api/latest", nil)
	if err != nil {
		return nil, err
	}
	return telemetry.DecodeSnapshot(body)
}

// FetchHost calls GET /api/hosts/{hostname}?limit=N.
func (f *HTTPFetcher) FetchHost(ctx context.Context, hostname string, limit int) (telemetry.HostHistory, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	body, err := f.get(ctx, "/api/hosts/"+url.PathEscape(hostname), query)
	if err != nil {
		return telemetry.HostHistory{}, err
	}
	return telemetry.DecodeHistory(body)
}

// Hosts calls GET /api/hosts and returns the known hostnames, sorted.
func (f *HTTPFetcher) Hosts(ctx context.Context) ([]string, error) {
	body, err := f.get(ctx, "/api/hosts", nil)
	if err != nil {
		return nil, err
	}
	snap, err := telemetry.DecodeSnapshot(body)
	if err != nil {
		return nil, err
	}
	hosts := make([]string, 0, len(snap))
	for h := range snap {
		hosts = append(hosts, h)
	}
	sort.Strings(hosts)
	return hosts, nil
}

func (f *HTTPFetcher) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := *f.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawPath = ""
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTransport, "Cannot build request for "+path, "")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTransport,
			"GET "+path+" failed",
			"Check that the telemetry server is running at "+f.base.String())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTransport, "Reading "+path+" failed", "")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.New(errors.ErrTransport,
			fmt.Sprintf("GET %s returned %s", path, resp.Status), "")
	}
	return body, nil
}

// StreamURL derives the websocket endpoint from the server's base URL:
// https becomes wss, http becomes ws, and the path gets /ws appended.
func StreamURL(baseURL string) (string, error) {
	u, err := parseServerURL(baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

func parseServerURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Invalid server URL %q", raw),
			"Use a URL like http://localhost:8080")
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unsupported server URL scheme %q", u.Scheme),
			"Use http:// or https://")
	}
	if u.Host == "" {
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Server URL %q has no host", raw),
			"Use a URL like http://localhost:8080")
	}
	return u, nil
}

// WebsocketDialer opens push channels with gorilla/websocket.
type WebsocketDialer struct {
	URL string
	// Dialer defaults to websocket.DefaultDialer.
	Dialer *websocket.Dialer
	// ReadLimit caps a single frame. Defaults to maxBody.
	ReadLimit int64
}

// Dial connects to the websocket endpoint.
func (d *WebsocketDialer) Dial(ctx context.Context) (Stream, error) {
	dialer := d.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	conn, resp, err := dialer.DialContext(ctx, d.URL, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTransport,
			"Cannot open push channel "+d.URL, "")
	}

	limit := d.ReadLimit
	if limit <= 0 {
		limit = maxBody
	}
	conn.SetReadLimit(limit)
	return &wsStream{conn: conn}, nil
}

type wsStream struct {
	conn *websocket.Conn
}

// Read returns the next data frame. Control frames are handled by the connection.
func (s *wsStream) Read() ([]byte, error) {
	_, data, err := s.conn.ReadMessage()
	return data, err
}

func (s *wsStream) Close() error {
	return s.conn.Close()
}
