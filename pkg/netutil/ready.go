package netutil

import (
	"context"
	"net"
	"strconv"
	"time"
)

const (
	// DefaultReadyAttempts and DefaultReadyInterval bound the wait for ttyd
	// to roughly five seconds.
	DefaultReadyAttempts = 100
	DefaultReadyInterval = 50 * time.Millisecond
)

// DialFunc attempts a single connection.
type DialFunc func(ctx context.Context, addr string) error

// ReadinessProbe polls a TCP address until it accepts a connection.
type ReadinessProbe struct {
	Attempts int
	Interval time.Duration
	Dial     DialFunc
	// Sleep waits between attempts; it returns early when ctx is done.
	Sleep func(ctx context.Context, d time.Duration)
}

// WaitForTCP polls host:port with the default attempt bound and interval.
func WaitForTCP(ctx context.Context, host string, port uint16) bool {
	probe := ReadinessProbe{}
	return probe.Wait(ctx, net.JoinHostPort(host, strconv.Itoa(int(port))))
}

// Wait dials addr up to Attempts times, Interval apart, and reports whether a
// connection succeeded. Giving up is not an error: callers carry on either way.
func (p ReadinessProbe) Wait(ctx context.Context, addr string) bool {
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = DefaultReadyAttempts
	}
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultReadyInterval
	}
	dial := p.Dial
	if dial == nil {
		dial = tcpDial(interval)
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	for i := 0; i < attempts; i++ {
		if ctx.Err() != nil {
			return false
		}
		if err := dial(ctx, addr); err == nil {
			return true
		}
		if i < attempts-1 {
			sleep(ctx, interval)
		}
	}
	return false
}

func tcpDial(timeout time.Duration) DialFunc {
	return func(ctx context.Context, addr string) error {
		d := net.Dialer{Timeout: timeout}
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return err
		}
		return conn.Close()
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
