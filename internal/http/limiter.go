package http

import (
	"context"
	"net"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"
)

// HostLimiter caps the number of in-flight requests per host.
//
// Each host gets its own weighted semaphore, created on first use. Hosts do
// not constrain each other.
type HostLimiter struct {
	limit int64

	mu   sync.Mutex
	sems map[string]*semaphore.Weighted
}

// NewHostLimiter creates a limiter allowing limit requests per host.
// A limit below 1 is treated as 1.
func NewHostLimiter(limit int) *HostLimiter {
	if limit < 1 {
		limit = 1
	}
	return &HostLimiter{
		limit: int64(limit),
		sems:  make(map[string]*semaphore.Weighted),
	}
}

// Acquire blocks until a slot for host is free or ctx is done.
// The returned release func must be called exactly once.
func (l *HostLimiter) Acquire(ctx context.Context, host string) (release func(), err error) {
	sem := l.semaphore(strings.ToLower(host))
	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return func() { sem.Release(1) }, nil
}

// HostKey returns the limiter key for u: lower-cased host name and port,
// with the scheme's default port filled in when u has none.
// "https://h/x" and "https://h:443/x" share a key.
func HostKey(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if port == "" {
		switch strings.ToLower(u.Scheme) {
		case "http":
			port = "80"
		case "https":
			port = "443"
		}
	}
	if port == "" {
		return host
	}
	return net.JoinHostPort(host, port)
}

// Limit returns the per-host capacity.
func (l *HostLimiter) Limit() int {
	return int(l.limit)
}

func (l *HostLimiter) semaphore(host string) *semaphore.Weighted {
	l.mu.Lock()
	defer l.mu.Unlock()

	sem, ok := l.sems[host]
	if !ok {
		sem = semaphore.NewWeighted(l.limit)
		l.sems[host] = sem
	}
	return sem
}
