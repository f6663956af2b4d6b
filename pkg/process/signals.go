package process

import (
	"os"
	"os/signal"
	"sync"
)

// ForwardInterrupt relays every os.Interrupt delivered to this process to
// pid as SIGTERM, until the returned stop function is called. report, if
// non-nil, is called after each forwarding attempt. The handler only reads
// pid, so it needs no synchronisation with the caller.
func ForwardInterrupt(pid int, report func(sig os.Signal, err error)) (stop func()) {
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, os.Interrupt)

	go func() {
		for {
			select {
			case sig := <-sigs:
				err := Terminate(pid)
				if report != nil {
					report(sig, err)
				}
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigs)
			close(done)
		})
	}
}
