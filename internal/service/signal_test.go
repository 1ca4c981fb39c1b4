package service

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nanpeixoto/acervus/internal/domain"
)

func TestRealtimeStopsOnContextCancel(t *testing.T) {
	s := NewSignalService(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}))

	ctx, cancel := context.WithCancel(context.Background())
	input := make(chan []string)
	output := make(chan domain.Event)

	done := make(chan struct{})
	go func() {
		s.Realtime(ctx, input, output)
		close(done)
	}()

	// No one ever reads output; cancelling the context alone must stop
	// the loop.
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Realtime did not return after context cancellation")
	}
}

func TestRealtimeStopsOnClosedInput(t *testing.T) {
	s := NewSignalService(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}))

	input := make(chan []string)
	output := make(chan domain.Event)

	done := make(chan struct{})
	go func() {
		s.Realtime(context.Background(), input, output)
		close(done)
	}()

	close(input)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Realtime did not return after input was closed")
	}
}
