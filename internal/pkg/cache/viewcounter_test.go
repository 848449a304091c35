package cache

import (
	"context"
	"testing"
)

type recordingFlush struct {
	total  int64
	deltas []int64
}

func (r *recordingFlush) fn(ctx context.Context, key string, count int64) error {
	r.total += count
	r.deltas = append(r.deltas, count)
	return nil
}

func TestViewCounterFlushCarriesOnlyDelta(t *testing.T) {
	durable := &recordingFlush{}
	vc := NewViewCounter(nil, 2, durable.fn)

	for i := 0; i < 4; i++ {
		if _, err := vc.Increment(context.Background(), "post-1"); err != nil {
			t.Fatalf("Increment %d: %v", i, err)
		}
	}

	if durable.total != 4 {
		t.Fatalf("4 views recorded, but durable store was told to add %d", durable.total)
	}
	if len(durable.deltas) != 2 || durable.deltas[0] != 2 || durable.deltas[1] != 2 {
		t.Errorf("flush deltas = %v, want [2 2]", durable.deltas)
	}
}

func TestViewCounterResetsAfterFlush(t *testing.T) {
	durable := &recordingFlush{}
	vc := NewViewCounter(nil, 3, durable.fn)

	for want := int64(1); want <= 3; want++ {
		got, err := vc.Increment(context.Background(), "post-1")
		if err != nil {
			t.Fatalf("Increment: %v", err)
		}
		if got != want {
			t.Fatalf("pending count = %d, want %d", got, want)
		}
	}

	// The third increment flushed; the cycle starts over
	got, err := vc.Increment(context.Background(), "post-1")
	if err != nil {
		t.Fatalf("Increment after flush: %v", err)
	}
	if got != 1 {
		t.Errorf("pending count after flush = %d, want 1", got)
	}
}

func TestViewCounterFlushAllDrainsPending(t *testing.T) {
	durable := &recordingFlush{}
	vc := NewViewCounter(nil, 100, durable.fn)

	for i := 0; i < 3; i++ {
		if _, err := vc.Increment(context.Background(), "post-1"); err != nil {
			t.Fatalf("Increment: %v", err)
		}
	}
	if _, err := vc.Increment(context.Background(), "post-2"); err != nil {
		t.Fatalf("Increment: %v", err)
	}

	if err := vc.FlushAll(context.Background()); err != nil {
		t.Fatalf("FlushAll: %v", err)
	}
	if durable.total != 4 {
		t.Errorf("durable total = %d, want 4", durable.total)
	}

	// Nothing pending, a second drain adds nothing
	if err := vc.FlushAll(context.Background()); err != nil {
		t.Fatalf("second FlushAll: %v", err)
	}
	if durable.total != 4 {
		t.Errorf("second drain re-sent views, total = %d", durable.total)
	}
}
