package ops

import "testing"

func TestJobQueueRunsInFIFOOrder(t *testing.T) {
	q := NewJobQueue()
	var order []int
	q.Enqueue(func() { order = append(order, 1) })
	q.Enqueue(func() { order = append(order, 2) })
	q.Enqueue(func() { order = append(order, 3) })

	if got := q.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	q.Drain()
	if q.Len() != 0 {
		t.Errorf("Len() after Drain = %d, want 0", q.Len())
	}
	want := []int{1, 2, 3}
	for i, v := range want {
		if order[i] != v {
			t.Errorf("order[%d] = %d, want %d", i, order[i], v)
		}
	}
}

func TestJobQueueDrainRunsJobsEnqueuedByJobs(t *testing.T) {
	q := NewJobQueue()
	ran := 0
	var second func()
	second = func() { ran++ }
	q.Enqueue(func() {
		ran++
		q.Enqueue(second)
	})
	q.Drain()
	if ran != 2 {
		t.Errorf("ran = %d, want 2 (job chain should fully drain)", ran)
	}
	if q.Len() != 0 {
		t.Errorf("Len() after Drain = %d, want 0", q.Len())
	}
}

func TestJobQueueDrainOnEmptyQueueIsNoOp(t *testing.T) {
	q := NewJobQueue()
	q.Drain()
	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
}
