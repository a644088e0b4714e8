package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/felixge/httpsnoop"
	"golang.org/x/time/rate"
)

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

type rateLimitedClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters holds one token bucket per client address.
type clientLimiters struct {
	mu      sync.Mutex
	clients map[string]*rateLimitedClient
	rps     rate.Limit
	burst   int
}

func newClientLimiters(rps float64, burst int) *clientLimiters {
	return &clientLimiters{
		clients: map[string]*rateLimitedClient{},
		rps:     rate.Limit(rps),
		burst:   burst,
	}
}

func (cl *clientLimiters) allow(ip string, now time.Time) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	c, ok := cl.clients[ip]
	if !ok {
		c = &rateLimitedClient{limiter: rate.NewLimiter(cl.rps, cl.burst)}
		cl.clients[ip] = c
	}
	c.lastSeen = now

	return c.limiter.AllowN(now, 1)
}

// sweep forgets clients not seen for longer than maxIdle.
func (cl *clientLimiters) sweep(now time.Time, maxIdle time.Duration) {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	for ip, c := range cl.clients {
		if now.Sub(c.lastSeen) > maxIdle {
			delete(cl.clients, ip)
		}
	}
}

func (cl *clientLimiters) size() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.clients)
}

// sweepEvery runs sweep on each tick until ctx is done.
func (cl *clientLimiters) sweepEvery(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			cl.sweep(now, maxIdle)
		}
	}
}

// rateLimit keys clients by their originating address as reported by the
// load balancer in front of us, not by the balancer's own address.
func (app *application) rateLimit(ctx context.Context, next http.Handler) http.Handler {
	if !app.cfg.Limiter.Enabled {
		return next
	}

	limiters := newClientLimiters(app.cfg.Limiter.RPS, app.cfg.Limiter.Burst)
	go limiters.sweepEvery(ctx, time.Minute, 3*time.Minute)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiters.allow(clientIP(r), time.Now()) {
			app.rateLimitExceededResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")
		w.Header().Add("Vary", "Access-Control-Request-Method")

		origin := r.Header.Get("Origin")
		if origin != "" {
			for _, org := range app.cfg.CORS.TrustedOrigins {
				if org == origin {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
						w.Header().Set("Access-Control-Allow-Methods", "OPTIONS, GET, HEAD")
						w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
						w.WriteHeader(http.StatusOK)
						return
					}

					break
				}
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.metrics.Start()

		m := httpsnoop.CaptureMetrics(next, w, r)

		app.metrics.Observe(r.Method, m.Code, m.Duration)
	})
}
