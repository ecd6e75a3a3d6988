package crafting

import (
	"fmt"
	"time"

	"github.com/abhisek/craftq/internal/profession"
	"github.com/abhisek/craftq/internal/recipes"
)

// Status is the lifecycle state of a craft job.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Job is one queued or running execution of a recipe.
type Job struct {
	ID        string
	Recipe    recipes.Recipe
	Status    Status
	StartTime *time.Time // nil while queued
	TotalTime time.Duration
	Progress  float64 // percent, 0..100
}

// Profession returns the profession the job belongs to.
func (j Job) Profession() profession.ID {
	return j.Recipe.Profession
}

// Remaining returns the time left until completion at now.
func (j Job) Remaining(now time.Time) time.Duration {
	if j.StartTime == nil {
		return j.TotalTime
	}
	left := j.TotalTime - now.Sub(*j.StartTime)
	if left < 0 {
		return 0
	}
	return left
}

// progressAt computes the completion percentage from wall-clock time.
func progressAt(start time.Time, total time.Duration, now time.Time) float64 {
	if total <= 0 {
		return 100
	}
	pct := float64(now.Sub(start)) / float64(total) * 100
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

// Queue holds live craft jobs in insertion order.
type Queue struct {
	jobs []*Job
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends a queued job for r. A zero recipe duration falls back
// to defaultDuration.
func (q *Queue) Enqueue(id string, r recipes.Recipe, defaultDuration time.Duration) Job {
	total := r.Duration
	if total <= 0 {
		total = defaultDuration
	}
	j := &Job{ID: id, Recipe: r, Status: StatusQueued, TotalTime: total}
	q.jobs = append(q.jobs, j)
	return *j
}

// Remove deletes a job. It reports whether the job existed.
func (q *Queue) Remove(id string) bool {
	for i, j := range q.jobs {
		if j.ID == id {
			q.jobs = append(q.jobs[:i], q.jobs[i+1:]...)
			return true
		}
	}
	return false
}

// Update applies fn to the job in place.
func (q *Queue) Update(id string, fn func(j *Job)) error {
	j := q.find(id)
	if j == nil {
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	fn(j)
	return nil
}

// Get returns a copy of a job.
func (q *Queue) Get(id string) (Job, bool) {
	if j := q.find(id); j != nil {
		return *j, true
	}
	return Job{}, false
}

// QueuedFor returns the queued jobs of a profession in FIFO order.
func (q *Queue) QueuedFor(p profession.ID) []Job {
	var out []Job
	for _, j := range q.jobs {
		if j.Status == StatusQueued && j.Profession() == p {
			out = append(out, *j)
		}
	}
	return out
}

// All returns copies of every job in insertion order.
func (q *Queue) All() []Job {
	out := make([]Job, len(q.jobs))
	for i, j := range q.jobs {
		out[i] = *j
	}
	return out
}

// Len returns the number of live jobs.
func (q *Queue) Len() int {
	return len(q.jobs)
}

func (q *Queue) find(id string) *Job {
	for _, j := range q.jobs {
		if j.ID == id {
			return j
		}
	}
	return nil
}
