package ratelimitmemory_test

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/resumeforge/pkg/ratelimit/ratelimitmemory"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestAllow_SlidingWindow(t *testing.T) {
	clk := &clock{t: time.Unix(1_700_000_000, 0)}
	l := ratelimitmemory.New(2, time.Minute, ratelimitmemory.WithClock(clk.now))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		d, _ := l.Allow(ctx, "1.2.3.4")
		if !d.Allowed {
			t.Fatalf("request %d should be allowed", i)
		}
	}

	clk.advance(10 * time.Second)
	d, _ := l.Allow(ctx, "1.2.3.4")
	if d.Allowed {
		t.Fatal("third request inside the window must be denied")
	}
	if d.RetryAfter != 50*time.Second {
		t.Fatalf("expected 50s retry, got %s", d.RetryAfter)
	}

	if d, _ := l.Allow(ctx, "5.6.7.8"); !d.Allowed {
		t.Fatal("other clients are independent")
	}

	clk.advance(50 * time.Second)
	if d, _ := l.Allow(ctx, "1.2.3.4"); !d.Allowed {
		t.Fatal("request after the window must be allowed")
	}
}

func TestAllow_DeniedRequestsAreNotRecorded(t *testing.T) {
	clk := &clock{t: time.Unix(0, 0)}
	l := ratelimitmemory.New(1, time.Minute, ratelimitmemory.WithClock(clk.now))
	ctx := context.Background()

	l.Allow(ctx, "k")
	for i := 0; i < 5; i++ {
		clk.advance(10 * time.Second)
		l.Allow(ctx, "k")
	}

	clk.advance(10 * time.Second)
	if d, _ := l.Allow(ctx, "k"); !d.Allowed {
		t.Fatal("denials must not extend the window")
	}
}

func TestAllow_Remaining(t *testing.T) {
	l := ratelimitmemory.New(3, time.Minute)
	d, _ := l.Allow(context.Background(), "k")
	if d.Remaining != 2 || d.Limit != 3 {
		t.Fatalf("unexpected decision %+v", d)
	}
}

func TestPrune(t *testing.T) {
	clk := &clock{t: time.Unix(0, 0)}
	l := ratelimitmemory.New(5, time.Minute, ratelimitmemory.WithClock(clk.now))
	l.Allow(context.Background(), "a")
	l.Allow(context.Background(), "b")

	clk.advance(30 * time.Second)
	l.Allow(context.Background(), "b")

	clk.advance(45 * time.Second)
	if n := l.Prune(); n != 1 {
		t.Fatalf("expected 1 pruned client, got %d", n)
	}
}
