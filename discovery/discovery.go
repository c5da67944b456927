package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Entry describes an announced game server.
type Entry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// New announces self on a single port.
func New(self Entry, port uint16) (*Discover, error) {
	return NewWithOptions(self, WithPort(port), WithAttempts(0))
}

type handler struct {
	body []byte
}

func (h handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(h.body)
}

func NewWithPortRange(self Entry, startPort, endPort uint16, attempts uint) (*Discover, error) {
	return NewWithOptions(self,
		WithPortRange(startPort, endPort),
		WithAttempts(attempts),
	)
}

// Search probes every port of the range once and returns the entries found.
func Search(ctx context.Context, host string, startPort, endPort uint16) []Entry {
	client := &http.Client{Timeout: 500 * time.Millisecond}
	var entries []Entry
	for port := uint32(startPort); port <= uint32(endPort); port++ {
		if ctx.Err() != nil {
			break
		}
		if e, err := probe(ctx, client, host, uint16(port)); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func probe(ctx context.Context, client *http.Client, host string, port uint16) (Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("http://%s:%d", host, port), nil)
	if err != nil {
		return Entry{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return Entry{}, err
	}
	defer resp.Body.Close()
	var e Entry
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		return Entry{}, fmt.Errorf("port %d: %w", port, err)
	}
	return e, nil
}

func (d *Discover) search() {
	client := &http.Client{Timeout: 500 * time.Millisecond}
	for port := uint32(d.startPort); port <= uint32(d.endPort); port++ {
		if uint16(port) == d.port {
			continue
		}
		e, err := probe(context.Background(), client, d.host, uint16(port))
		if err != nil {
			continue
		}
		select {
		case d.Entries <- e:
		default:
			// nobody is listening, the entry is dropped
		}
	}
}

// Port is the port this instance announces on.
func (d *Discover) Port() uint16 {
	return d.port
}

func (d *Discover) Close() error {
	return d.server.Shutdown(context.Background())
}
