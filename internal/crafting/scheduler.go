package crafting

import (
	"time"

	"github.com/abhisek/craftq/internal/notify"
	"github.com/abhisek/craftq/internal/profession"
)

// lane is the per-profession scheduler state. A lane is Idle when
// activeID is empty and Active otherwise.
type lane struct {
	activeID string

	// pending is set when a promotion has been requested; it fires once
	// promoteAt is reached. Repeated requests inside the window collapse
	// into one promotion.
	pending   bool
	promoteAt time.Time
}

func (l *lane) idle() bool {
	return l.activeID == ""
}

func (e *Engine) lane(p profession.ID) *lane {
	l, ok := e.lanes[p]
	if !ok {
		l = &lane{}
		e.lanes[p] = l
	}
	return l
}

// requestPromotion schedules the lane's next promotion after the
// debounce window unless one is already pending.
func (e *Engine) requestPromotion(p profession.ID, at time.Time) {
	l := e.lane(p)
	if !l.idle() || l.pending {
		return
	}
	l.pending = true
	l.promoteAt = at.Add(e.cfg.PromotionDebounce)
}

// advance runs a lane forward to now. Jobs whose duration elapsed
// before now are finalized at their due time, and the next queued job
// is promoted at its scheduled instant, so a lane that was not ticked
// for a while catches up in FIFO order. The caller holds e.mu.
func (e *Engine) advance(p profession.ID, now time.Time) ([]Completion, []notify.Event) {
	var (
		done   []Completion
		events []notify.Event
	)
	l := e.lane(p)
	for {
		if !l.idle() {
			job, ok := e.queue.Get(l.activeID)
			if !ok || job.StartTime == nil {
				e.log.Warn("active job missing, resetting lane", "profession", p, "job_id", l.activeID)
				l.activeID = ""
				e.requestPromotion(p, now)
				continue
			}
			due := job.StartTime.Add(job.TotalTime)
			if now.Before(due) {
				_ = e.queue.Update(job.ID, func(j *Job) {
					j.Progress = progressAt(*j.StartTime, j.TotalTime, now)
				})
				break
			}
			c, evs := e.finalize(job, due)
			done = append(done, c)
			events = append(events, evs...)
			l.activeID = ""
			e.requestPromotion(p, due)
			continue
		}

		if !l.pending {
			if len(e.queue.QueuedFor(p)) == 0 {
				break
			}
			e.requestPromotion(p, now)
		}
		if now.Before(l.promoteAt) {
			break
		}
		l.pending = false
		if !e.promote(p, l, l.promoteAt) {
			break
		}
	}
	return done, events
}

// promote moves the head of the profession's queue to in_progress.
func (e *Engine) promote(p profession.ID, l *lane, at time.Time) bool {
	queued := e.queue.QueuedFor(p)
	if len(queued) == 0 {
		return false
	}
	head := queued[0]
	start := at
	_ = e.queue.Update(head.ID, func(j *Job) {
		j.Status = StatusInProgress
		j.StartTime = &start
		j.Progress = 0
	})
	l.activeID = head.ID
	e.log.Debug("craft job promoted", "profession", p, "job_id", head.ID, "recipe", head.Recipe.ID)
	return true
}
