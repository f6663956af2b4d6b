package netutil

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EnigmaCurry/shell-scene/errors"
	"github.com/EnigmaCurry/shell-scene/testutil"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// fakeListen frees only the ports in free and records every probe.
func fakeListen(free map[uint16]bool, probed *[]uint16) ListenFunc {
	return func(host string, port uint16) (io.Closer, error) {
		*probed = append(*probed, port)
		if free[port] {
			return nopCloser{}, nil
		}
		return nil, fmt.Errorf("port %d in use", port)
	}
}

func TestFindFreePort_ScansUpward(t *testing.T) {
	var probed []uint16
	s := PortScanner{Listen: fakeListen(map[uint16]bool{7683: true, 9000: true}, &probed)}

	port, err := s.FindFreePort(7681)
	require.NoError(t, err)
	assert.Equal(t, uint16(7683), port)
	assert.Equal(t, []uint16{7681, 7682, 7683}, probed)
}

func TestFindFreePort_WrapsAround(t *testing.T) {
	var probed []uint16
	s := PortScanner{Listen: fakeListen(map[uint16]bool{2: true}, &probed)}

	port, err := s.FindFreePort(65534)
	require.NoError(t, err)
	assert.Equal(t, uint16(2), port)
	assert.Equal(t, []uint16{65534, 65535, 1, 2}, probed, "port 0 is never probed")
}

func TestFindFreePort_ZeroBehavesLikeOne(t *testing.T) {
	for _, free := range []uint16{1, 80, 65535} {
		var fromZero, fromOne []uint16
		free := map[uint16]bool{free: true}

		a, errA := PortScanner{Listen: fakeListen(free, &fromZero)}.FindFreePort(0)
		b, errB := PortScanner{Listen: fakeListen(free, &fromOne)}.FindFreePort(1)

		require.NoError(t, errA)
		require.NoError(t, errB)
		assert.Equal(t, b, a)
		assert.Equal(t, fromOne, fromZero)
	}
}

func TestFindFreePort_Exhausted(t *testing.T) {
	for _, start := range []uint16{0, 1, 7681, 65535} {
		t.Run(strconv.Itoa(int(start)), func(t *testing.T) {
			var probed []uint16
			s := PortScanner{Listen: fakeListen(nil, &probed)}

			_, err := s.FindFreePort(start)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodePortsExhausted))
			assert.Len(t, probed, MaxPort, "every port is probed exactly once")

			seen := make(map[uint16]bool, len(probed))
			for _, p := range probed {
				assert.NotZero(t, p)
				assert.False(t, seen[p], "port %d probed twice", p)
				seen[p] = true
			}
		})
	}
}

func TestFindFreePort_SkipsBoundPort(t *testing.T) {
	bound := testutil.OccupyPort(t, 0)
	if bound == MaxPort {
		t.Skip("kernel handed out the last port")
	}

	port, err := FindFreePort(uint16(bound))
	require.NoError(t, err)
	assert.NotEqual(t, uint16(bound), port)

	ln, err := net.Listen("tcp", net.JoinHostPort(DefaultHost, strconv.Itoa(int(port))))
	require.NoError(t, err, "returned port should be bindable")
	_ = ln.Close()
}

func TestReadinessProbe_Unreachable(t *testing.T) {
	var dials int
	var sleeps []time.Duration

	p := ReadinessProbe{
		Attempts: 7,
		Interval: 25 * time.Millisecond,
		Dial: func(ctx context.Context, addr string) error {
			dials++
			return fmt.Errorf("connection refused")
		},
		Sleep: func(ctx context.Context, d time.Duration) {
			sleeps = append(sleeps, d)
		},
	}

	assert.False(t, p.Wait(context.Background(), "127.0.0.1:1"))
	assert.Equal(t, 7, dials)
	require.Len(t, sleeps, 6)
	for _, d := range sleeps {
		assert.Equal(t, 25*time.Millisecond, d)
	}
}

func TestReadinessProbe_ReachableReturnsEarly(t *testing.T) {
	var dials int
	p := ReadinessProbe{
		Attempts: 10,
		Interval: time.Millisecond,
		Dial: func(ctx context.Context, addr string) error {
			dials++
			if dials < 3 {
				return fmt.Errorf("not yet")
			}
			return nil
		},
		Sleep: func(ctx context.Context, d time.Duration) {},
	}

	assert.True(t, p.Wait(context.Background(), "127.0.0.1:1"))
	assert.Equal(t, 3, dials)
}

func TestReadinessProbe_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var dials int
	p := ReadinessProbe{
		Attempts: 5,
		Dial: func(ctx context.Context, addr string) error {
			dials++
			return fmt.Errorf("refused")
		},
	}
	assert.False(t, p.Wait(ctx, "127.0.0.1:1"))
	assert.Zero(t, dials)
}

func TestWaitForTCP_RealListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	port := uint16(ln.Addr().(*net.TCPAddr).Port)
	start := time.Now()
	assert.True(t, WaitForTCP(context.Background(), DefaultHost, port))
	assert.Less(t, time.Since(start), time.Second)
}

func TestReadinessProbe_RealUnreachableTiming(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	p := ReadinessProbe{Attempts: 4, Interval: 30 * time.Millisecond}
	start := time.Now()
	assert.False(t, p.Wait(context.Background(), addr))
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}
