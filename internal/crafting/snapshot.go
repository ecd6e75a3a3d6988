package crafting

import (
	"sort"
	"strconv"
	"time"

	"github.com/abhisek/craftq/internal/logger"
	"github.com/abhisek/craftq/internal/profession"
	"github.com/abhisek/craftq/internal/progression"
	"github.com/abhisek/craftq/internal/recipes"
	"github.com/abhisek/craftq/internal/store"
)

// LoadReport summarizes startup recovery of a persisted queue.
type LoadReport struct {
	Purged  int // corrupt entries discarded
	Dropped int // entries with an unusable recipe or status
	Resumed int // in_progress jobs kept active
	Demoted int // extra in_progress jobs returned to queued
	Merge   recipes.MergeResult
}

// NewEngine builds an engine from a snapshot. A nil snapshot starts a
// fresh player who knows every level 0 recipe of the recipe pack.
func NewEngine(cfg Config, deps Deps, snap *store.SnapshotData, now time.Time) *Engine {
	if cfg.DefaultCraftTime <= 0 {
		cfg.DefaultCraftTime = DefaultConfig().DefaultCraftTime
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultConfig().TickInterval
	}
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	e := &Engine{
		cfg:    cfg,
		queue:  NewQueue(),
		lanes:  make(map[profession.ID]*lane),
		ledger: deps.Ledger,
		items:  deps.Items,
		inv:    deps.Inventory,
		sink:   deps.Sink,
		log:    log,
		newID:  newJobID,
		clock:  time.Now,
	}

	catalog, merge := recipes.LoadCatalog(snap, deps.Pack)
	e.catalog = catalog
	e.packVersion = merge.PackVersion
	e.report.Merge = merge
	if snap != nil && (len(merge.Added) > 0 || len(merge.Refreshed) > 0 || len(merge.Skipped) > 0) {
		log.Info("recipe pack merged", "version", merge.PackVersion,
			"added", merge.Added, "refreshed", merge.Refreshed, "skipped", merge.Skipped)
	}

	if snap == nil {
		e.known = recipes.NewKnownSet()
		e.tracker = progression.NewTracker()
		for _, r := range deps.Pack.Recipes {
			if r.RequiredLevel == profession.UntrainedLevel {
				e.known.Learn(r.Profession, r.ID)
			}
		}
		return e
	}

	e.known = recipes.LoadKnownSet(snap.KnownRecipes)
	e.tracker = progression.Load(snap.Professions)
	e.restoreQueue(snap.Queue, now)
	return e
}

// isCorrupt reports the invalid-persistence signature: a start time
// that serializes to the job's own id.
func isCorrupt(d store.CraftJobData) bool {
	return d.StartTimeMs != nil && strconv.FormatInt(*d.StartTimeMs, 10) == d.ID
}

// restoreQueue rebuilds the live queue. Corrupt entries are purged
// before anything else looks at the data. Each profession keeps at most
// one in_progress job, the earliest started; others go back to queued.
func (e *Engine) restoreQueue(data []store.CraftJobData, now time.Time) {
	clean := make([]store.CraftJobData, 0, len(data))
	for _, d := range data {
		if isCorrupt(d) {
			e.report.Purged++
			e.log.Warn("purged corrupt craft job", "job_id", d.ID, "start_time_ms", *d.StartTimeMs)
			continue
		}
		clean = append(clean, d)
	}

	for _, d := range clean {
		r := recipes.FromData(d.Recipe)
		if err := r.Validate(); err != nil {
			e.report.Dropped++
			e.log.Warn("dropped craft job with invalid recipe", "job_id", d.ID, "error", err)
			continue
		}
		if d.ID == "" {
			d.ID = e.newID()
		}
		job := &Job{
			ID:        d.ID,
			Recipe:    r,
			TotalTime: time.Duration(d.TotalTimeMs) * time.Millisecond,
			Progress:  d.Progress,
		}
		if job.TotalTime <= 0 {
			job.TotalTime = e.cfg.DefaultCraftTime
		}
		switch Status(d.Status) {
		case StatusQueued:
			job.Status = StatusQueued
			job.Progress = 0
		case StatusInProgress:
			if d.StartTimeMs == nil {
				job.Status = StatusQueued
				job.Progress = 0
				break
			}
			start := time.UnixMilli(*d.StartTimeMs).UTC()
			job.Status = StatusInProgress
			job.StartTime = &start
		default:
			e.report.Dropped++
			e.log.Warn("dropped craft job with unexpected status", "job_id", d.ID, "status", d.Status)
			continue
		}
		e.queue.jobs = append(e.queue.jobs, job)
	}

	active := make(map[profession.ID][]*Job)
	for _, j := range e.queue.jobs {
		if j.Status == StatusInProgress {
			active[j.Profession()] = append(active[j.Profession()], j)
		}
	}
	for p, jobs := range active {
		sort.SliceStable(jobs, func(a, b int) bool { return jobs[a].StartTime.Before(*jobs[b].StartTime) })
		keep := jobs[0]
		keep.Progress = progressAt(*keep.StartTime, keep.TotalTime, now)
		e.lane(p).activeID = keep.ID
		e.report.Resumed++
		for _, extra := range jobs[1:] {
			extra.Status = StatusQueued
			extra.StartTime = nil
			extra.Progress = 0
			e.report.Demoted++
			e.log.Warn("demoted extra in-progress craft job", "profession", p, "job_id", extra.ID)
		}
	}

	for _, j := range e.queue.jobs {
		if j.Status == StatusQueued {
			e.requestPromotion(j.Profession(), now.Add(-e.cfg.PromotionDebounce))
		}
	}
}

// SnapshotData exports the engine state. The inventory section is left
// to the ledger's owner.
func (e *Engine) SnapshotData() *store.SnapshotData {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := &store.SnapshotData{
		Version:           store.CurrentSnapshotVersion,
		RecipePackVersion: e.packVersion,
		Professions:       e.tracker.SnapshotData(),
		KnownRecipes:      e.known.SnapshotData(),
		Recipes:           e.catalog.SnapshotData(),
	}
	for _, j := range e.queue.jobs {
		d := store.CraftJobData{
			ID:          j.ID,
			Recipe:      j.Recipe.ToData(),
			Status:      string(j.Status),
			TotalTimeMs: j.TotalTime.Milliseconds(),
			Progress:    j.Progress,
		}
		if j.StartTime != nil {
			ms := j.StartTime.UnixMilli()
			d.StartTimeMs = &ms
		}
		snap.Queue = append(snap.Queue, d)
	}
	return snap
}
