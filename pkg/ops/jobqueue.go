package ops

// Job is a zero-argument host-language closure queued by promise reaction
// scheduling (§4.9) or other microtask sources.
type Job func()

// JobQueue is the engine's microtask queue (§5: "Micro-tasks (promise
// reactions) run after the current synchronous evaluation drains"). It is
// a plain FIFO; the engine drains it to a fixed point after each top-level
// evaluation and, recursively, after each job it runs (so a reaction that
// itself enqueues more reactions is still honoured before the host regains
// control).
type JobQueue struct {
	jobs []Job
}

// NewJobQueue creates an empty queue.
func NewJobQueue() *JobQueue { return &JobQueue{} }

// Enqueue appends a job to run once the current synchronous evaluation
// completes.
func (q *JobQueue) Enqueue(j Job) { q.jobs = append(q.jobs, j) }

// Len reports the number of pending jobs.
func (q *JobQueue) Len() int { return len(q.jobs) }

// Drain runs every queued job to a fixed point, including jobs enqueued by
// jobs run during this call.
func (q *JobQueue) Drain() {
	for len(q.jobs) > 0 {
		j := q.jobs[0]
		q.jobs = q.jobs[1:]
		j()
	}
}
