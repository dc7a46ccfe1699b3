package llm

import "context"

// semaphore implements a simple counting semaphore for limiting concurrency
type semaphore struct {
	ch chan struct{}
}

// newSemaphore creates a new semaphore with the given capacity
func newSemaphore(capacity int) *semaphore {
	return &semaphore{
		ch: make(chan struct{}, capacity),
	}
}

// acquire acquires a semaphore slot, blocking if necessary
func (s *semaphore) acquire(ctx context.Context) error {
	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// release releases a semaphore slot
func (s *semaphore) release() {
	<-s.ch
}

type serialized struct {
	next Generator
	sem  *semaphore
}

// Serialize bounds the number of in-flight calls through gen to limit. Use it when
// the backend's shared session or credential is not safe for concurrent use; a
// limit of 1 makes every call exclusive.
func Serialize(gen Generator, limit int) Generator {
	if limit <= 0 {
		limit = 1
	}
	return &serialized{next: gen, sem: newSemaphore(limit)}
}

func (s *serialized) Generate(ctx context.Context, model, systemPrompt, userContent string) (string, error) {
	if err := s.sem.acquire(ctx); err != nil {
		return "", err
	}
	defer s.sem.release()

	return s.next.Generate(ctx, model, systemPrompt, userContent)
}
