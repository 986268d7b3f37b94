package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"clinic-booking-api/config"
	"clinic-booking-api/pkg/response"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware applies a per-client-IP token bucket. Stale entries are
// evicted in the background so the map does not grow unbounded.
type RateLimitMiddleware struct {
	clients map[string]*clientLimiter
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
}

func NewRateLimitMiddleware(cfg config.RateLimitConfig) *RateLimitMiddleware {
	m := &RateLimitMiddleware{
		clients: make(map[string]*clientLimiter),
		rps:     rate.Limit(cfg.RequestsPerSecond),
		burst:   cfg.Burst,
	}
	go m.cleanup()
	return m
}

func (m *RateLimitMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !m.allow(ip) {
			response.TooManyRequests(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *RateLimitMiddleware) allow(ip string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	client, ok := m.clients[ip]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(m.rps, m.burst)}
		m.clients[ip] = client
	}
	client.lastSeen = time.Now()

	return client.limiter.Allow()
}

func (m *RateLimitMiddleware) cleanup() {
	for {
		time.Sleep(time.Minute)

		m.mu.Lock()
		for ip, client := range m.clients {
			if time.Since(client.lastSeen) > 3*time.Minute {
				delete(m.clients, ip)
			}
		}
		m.mu.Unlock()
	}
}
