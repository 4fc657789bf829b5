package scout

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/time/rate"
)

// Gate enforces politeness toward the directory sites the scout visits:
// robots.txt rules plus a per-domain request rate.
type Gate struct {
	mu          sync.Mutex
	userAgent   string
	interval    time.Duration
	limiters    map[string]*rate.Limiter
	robotsCache map[string]*robotstxt.Group
}

func NewGate(userAgent string, interval time.Duration) *Gate {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Gate{
		userAgent:   userAgent,
		interval:    interval,
		limiters:    make(map[string]*rate.Limiter),
		robotsCache: make(map[string]*robotstxt.Group),
	}
}

// Wait blocks until the target's domain limiter allows another request.
func (g *Gate) Wait(ctx context.Context, targetURL string) error {
	u, err := url.Parse(targetURL)
	if err != nil {
		return err
	}

	g.mu.Lock()
	limiter, ok := g.limiters[u.Host]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(g.interval), 1)
		g.limiters[u.Host] = limiter
	}
	g.mu.Unlock()

	return limiter.Wait(ctx)
}

// Allowed checks the domain's robots.txt. Fetch or parse errors count as
// allowed, the same stance the original crawler took.
func (g *Gate) Allowed(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}

	g.mu.Lock()
	group, cached := g.robotsCache[u.Host]
	g.mu.Unlock()

	if !cached {
		group = g.fetchRobots(u)
		g.mu.Lock()
		g.robotsCache[u.Host] = group
		g.mu.Unlock()
	}

	if group == nil {
		return true
	}
	return group.Test(u.Path)
}

func (g *Gate) fetchRobots(u *url.URL) *robotstxt.Group {
	resp, err := http.Get(u.Scheme + "://" + u.Host + "/robots.txt")
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}
	return data.FindGroup(g.userAgent)
}
