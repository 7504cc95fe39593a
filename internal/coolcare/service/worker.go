package service

import "time"

// loop runs a periodic task on its own goroutine until stopped.
type loop struct {
	stopCh chan struct{}
	doneCh chan struct{}
}

func newLoop() loop {
	return loop{stopCh: make(chan struct{}), doneCh: make(chan struct{})}
}

// start calls tick every interval, and once up front when immediate is set.
func (l loop) start(interval time.Duration, immediate bool, tick func()) {
	go func() {
		defer close(l.doneCh)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		if immediate {
			tick()
		}
		for {
			select {
			case <-ticker.C:
				tick()
			case <-l.stopCh:
				return
			}
		}
	}()
}

// stop waits for an in-flight tick to return.
func (l loop) stop() {
	close(l.stopCh)
	<-l.doneCh
}
