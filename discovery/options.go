package discovery

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

type Discover struct {
	Entries   chan Entry
	port      uint16
	startPort uint16
	endPort   uint16
	host      string
	server    *http.Server
	attempts  uint
}

type option func(Discover) Discover

func NewWithOptions(self Entry, opts ...option) (*Discover, error) {
	d := Discover{
		startPort: 9000,
		endPort:   9010,
		host:      "localhost",
		attempts:  1,
	}
	for _, opt := range opts {
		d = opt(d)
	}
	if d.endPort < d.startPort {
		return nil, fmt.Errorf("invalid port range %d-%d", d.startPort, d.endPort)
	}
	d.Entries = make(chan Entry, int(d.endPort-d.startPort)+1)

	body, err := json.Marshal(self)
	if err != nil {
		return nil, err
	}

	var l net.Listener
	for port := uint32(d.startPort); port <= uint32(d.endPort); port++ {
		l, err = net.Listen("tcp", fmt.Sprintf("%s:%d", d.host, port))
		if err == nil {
			d.port = uint16(port)
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("no free port in %d-%d: %w", d.startPort, d.endPort, err)
	}
	d.server = &http.Server{
		Addr:    l.Addr().String(),
		Handler: handler{body: body},
	}
	go func() {
		if err := d.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(err)
		}
	}()
	go func() {
		for i := uint(0); i < d.attempts; i++ {
			d.search()
			time.Sleep(time.Second)
		}
	}()
	return &d, nil
}

func WithPortRange(startPort, endPort uint16) option {
	return func(d Discover) Discover {
		d.startPort = startPort
		d.endPort = endPort
		return d
	}
}

func WithPort(port uint16) option {
	return WithPortRange(port, port)
}

func WithAttempts(attempts uint) option {
	return func(d Discover) Discover {
		d.attempts = attempts
		return d
	}
}

func WithHost(host string) option {
	return func(d Discover) Discover {
		d.host = host
		return d
	}
}
