package probe

import "context"

type semaphore struct {
	C chan struct{}
}

func newSemaphore(n int) semaphore {
	return semaphore{C: make(chan struct{}, n)}
}

func (s *semaphore) acquire(ctx context.Context) error {
	select {
	case s.C <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *semaphore) release() {
	<-s.C
}
