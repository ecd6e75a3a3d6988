// Package crafting implements the craft job queue, the per-profession
// scheduler, and finalization of finished jobs.
package crafting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/craftq/internal/inventory"
	"github.com/abhisek/craftq/internal/logger"
	"github.com/abhisek/craftq/internal/notify"
	"github.com/abhisek/craftq/internal/profession"
	"github.com/abhisek/craftq/internal/progression"
	"github.com/abhisek/craftq/internal/recipes"
)

// Config holds scheduler timing.
type Config struct {
	TickInterval      time.Duration
	PromotionDebounce time.Duration
	DefaultCraftTime  time.Duration
}

// DefaultConfig returns the standard scheduler timing.
func DefaultConfig() Config {
	return Config{
		TickInterval:      100 * time.Millisecond,
		PromotionDebounce: 50 * time.Millisecond,
		DefaultCraftTime:  5 * time.Second,
	}
}

// Deps are the collaborators the engine works against.
type Deps struct {
	Ledger    Ledger
	Items     ItemCatalog
	Inventory Inventory
	Sink      notify.Sink
	Log       *logger.Logger
	Pack      recipes.Pack
}

// Engine owns the craft queue and profession progression for the local
// player. All methods are safe for concurrent use.
type Engine struct {
	mu sync.Mutex

	cfg     Config
	catalog *recipes.Catalog
	known   *recipes.KnownSet
	tracker *progression.Tracker
	queue   *Queue
	lanes   map[profession.ID]*lane

	ledger Ledger
	items  ItemCatalog
	inv    Inventory
	sink   notify.Sink
	log    *logger.Logger

	packVersion string
	report      LoadReport
	newID       func() string
	clock       func() time.Time
}

// LaneStatus is the scheduler view of one profession.
type LaneStatus struct {
	Profession profession.ID
	Idle       bool
	Active     *Job
	Queued     []Job
}

// ProfessionStatus is the progression view of one profession.
type ProfessionStatus struct {
	Profession profession.Profession
	State      progression.State
	Rung       profession.SkillLevel
	Progress   float64
}

// Craft validates a craft request, consumes its materials and queues a
// job. Any failure is also reported as one crafting_failed notification.
func (e *Engine) Craft(ctx context.Context, recipeID string, now time.Time) (Job, error) {
	e.mu.Lock()
	job, events, err := e.craftLocked(recipeID, now)
	e.mu.Unlock()

	e.emit(ctx, events...)
	return job, err
}

func (e *Engine) craftLocked(recipeID string, now time.Time) (Job, []notify.Event, error) {
	r, ok := e.catalog.Get(recipeID)
	if !ok {
		err := fmt.Errorf("%w: %s", ErrUnknownRecipe, recipeID)
		return Job{}, []notify.Event{failure(recipeID, "", recipeID, "unknown recipe", now)}, err
	}
	fail := func(reason string, err error) (Job, []notify.Event, error) {
		return Job{}, []notify.Event{failure(recipeName(r), r.Profession, r.ID, reason, now)}, err
	}

	if p, ok := profession.Lookup(r.Profession); !ok || !p.Implemented {
		return fail("profession not available", fmt.Errorf("%w: %s", ErrProfessionUnavailable, r.Profession))
	}
	if !e.known.Knows(r.Profession, r.ID) {
		return fail("recipe not learned", fmt.Errorf("%w: %s", ErrRecipeNotKnown, r.ID))
	}
	if err := Check(r, e.tracker.Level(r.Profession), e.ledger); err != nil {
		return fail(e.reason(err), err)
	}
	if err := Consume(r, e.ledger); err != nil {
		return fail(e.reason(err), fmt.Errorf("consume materials for %s: %w", r.ID, err))
	}

	job := e.queue.Enqueue(e.newID(), r, e.cfg.DefaultCraftTime)
	e.requestPromotion(r.Profession, now)
	e.log.Debug("craft job queued", "profession", r.Profession, "job_id", job.ID, "recipe", r.ID)

	started := notify.Event{
		Kind:       notify.KindCraftingStarted,
		Message:    fmt.Sprintf("Started crafting %s...", recipeName(r)),
		Timestamp:  now,
		Profession: string(r.Profession),
		RecipeID:   r.ID,
		JobID:      job.ID,
	}
	return job, []notify.Event{started}, nil
}

// CanCraft runs the craftability check without changing any state.
func (e *Engine) CanCraft(recipeID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, ok := e.catalog.Get(recipeID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRecipe, recipeID)
	}
	if !e.known.Knows(r.Profession, r.ID) {
		return fmt.Errorf("%w: %s", ErrRecipeNotKnown, r.ID)
	}
	return Check(r, e.tracker.Level(r.Profession), e.ledger)
}

// Remove deletes a queued job. Materials are not refunded. The job that
// is currently in progress cannot be removed.
func (e *Engine) Remove(jobID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	job, ok := e.queue.Get(jobID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	if job.Status == StatusInProgress {
		return fmt.Errorf("%w: %s", ErrJobActive, jobID)
	}
	e.queue.Remove(jobID)
	e.log.Debug("craft job removed", "profession", job.Profession(), "job_id", jobID)
	return nil
}

// Tick advances every profession to now and returns the jobs that
// completed.
func (e *Engine) Tick(ctx context.Context, now time.Time) []Completion {
	e.mu.Lock()
	var (
		done   []Completion
		events []notify.Event
	)
	for _, p := range e.laneIDs() {
		c, evs := e.advance(p, now)
		done = append(done, c...)
		events = append(events, evs...)
	}
	e.mu.Unlock()

	e.emit(ctx, events...)
	return done
}

// TickProfession advances a single profession to now.
func (e *Engine) TickProfession(ctx context.Context, p profession.ID, now time.Time) []Completion {
	e.mu.Lock()
	done, events := e.advance(p, now)
	e.mu.Unlock()

	e.emit(ctx, events...)
	return done
}

// Run drives one ticker per implemented profession until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range profession.Implemented() {
		g.Go(func() error {
			return e.drive(ctx, p.ID)
		})
	}
	return g.Wait()
}

// drive ticks one profession. Notifications are delivered with a
// context that outlives ctx so a tick racing shutdown still reaches the
// journal.
func (e *Engine) drive(ctx context.Context, p profession.ID) error {
	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()

	emitCtx := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			e.TickProfession(emitCtx, p, e.clock())
		}
	}
}

// Learn adds a catalog recipe to its profession's known set.
func (e *Engine) Learn(ctx context.Context, recipeID string, now time.Time) (bool, error) {
	e.mu.Lock()
	r, ok := e.catalog.Get(recipeID)
	if !ok {
		e.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrUnknownRecipe, recipeID)
	}
	changed := e.known.Learn(r.Profession, r.ID)
	e.mu.Unlock()

	if changed {
		e.emit(ctx, learnedEvent(r.Profession, r.ID, recipeName(r), now))
	}
	return changed, nil
}

// LearnAll learns every catalog recipe of a profession and returns how
// many were new.
func (e *Engine) LearnAll(ctx context.Context, p profession.ID, now time.Time) int {
	e.mu.Lock()
	var events []notify.Event
	for _, r := range e.catalog.RecipesFor(p) {
		if e.known.Learn(p, r.ID) {
			events = append(events, learnedEvent(p, r.ID, recipeName(r), now))
		}
	}
	e.mu.Unlock()

	e.emit(ctx, events...)
	return len(events)
}

// Forget removes a recipe from a profession's known set.
func (e *Engine) Forget(p profession.ID, recipeID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.known.Forget(p, recipeID)
}

// RegisterRecipe adds a recipe to the catalog. Authored recipes also
// get a scroll template in the item catalog, whose kind is returned.
// An authored recipe may replace an earlier authored one but never a
// shipped recipe.
func (e *Engine) RegisterRecipe(r recipes.Recipe) (string, error) {
	if p, ok := profession.Lookup(r.Profession); !ok || !p.Implemented {
		return "", fmt.Errorf("%w: %s", ErrProfessionUnavailable, r.Profession)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if existing, ok := e.catalog.Get(r.ID); ok && r.Authored && !existing.Authored {
		e.log.Warn("rejected authored recipe", "recipe", r.ID, "reason", "id collides with shipped recipe")
		return "", fmt.Errorf("%w: %s", ErrRecipeIDTaken, r.ID)
	}
	if err := e.catalog.Register(r); err != nil {
		return "", err
	}
	if !r.Authored {
		return "", nil
	}
	reg, ok := e.items.(templateRegistrar)
	if !ok {
		return "", nil
	}
	scroll := inventory.ScrollFor(r.ID, recipeName(r), string(r.Profession), r.RequiredLevel)
	reg.Register(scroll)
	return scroll.Kind, nil
}

// LearnFromScroll uses one recipe scroll from the ledger to learn the
// recipe it teaches.
func (e *Engine) LearnFromScroll(ctx context.Context, scrollKind string, now time.Time) (recipes.Recipe, error) {
	e.mu.Lock()
	r, err := e.learnFromScrollLocked(scrollKind)
	e.mu.Unlock()
	if err != nil {
		return recipes.Recipe{}, err
	}

	e.emit(ctx, learnedEvent(r.Profession, r.ID, recipeName(r), now))
	return r, nil
}

func (e *Engine) learnFromScrollLocked(scrollKind string) (recipes.Recipe, error) {
	tmpl, ok := e.items.Resolve(scrollKind)
	if !ok || !tmpl.IsScroll() {
		return recipes.Recipe{}, fmt.Errorf("%w: %s", ErrNotAScroll, scrollKind)
	}
	r, ok := e.catalog.Get(tmpl.RecipeID)
	if !ok {
		return recipes.Recipe{}, fmt.Errorf("%w: %s", ErrUnknownRecipe, tmpl.RecipeID)
	}
	if e.known.Knows(r.Profession, r.ID) {
		return recipes.Recipe{}, fmt.Errorf("%w: %s", ErrRecipeAlreadyKnown, r.ID)
	}
	if have := e.ledger.Available(scrollKind); have < 1 {
		return recipes.Recipe{}, &InsufficientMaterialError{Kind: scrollKind, Needed: 1, Have: have}
	}
	required := tmpl.RequiredLevel
	if required < r.RequiredLevel {
		required = r.RequiredLevel
	}
	if level := e.tracker.Level(r.Profession); level < required {
		return recipes.Recipe{}, &InsufficientSkillError{Profession: r.Profession, Required: required, Have: level}
	}
	if err := consumeKind(e.ledger, scrollKind, 1); err != nil {
		return recipes.Recipe{}, fmt.Errorf("use scroll %s: %w", scrollKind, err)
	}
	e.known.Learn(r.Profession, r.ID)
	return r, nil
}

// SetLevel moves a profession directly to a level.
func (e *Engine) SetLevel(p profession.ID, level int) (progression.State, error) {
	if _, ok := profession.Lookup(p); !ok {
		return progression.State{}, fmt.Errorf("%w: %s", ErrProfessionUnavailable, p)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.SetLevel(p, level), nil
}

// Jobs returns every live job in insertion order.
func (e *Engine) Jobs() []Job {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.All()
}

// Idle reports whether no jobs are queued or running.
func (e *Engine) Idle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Len() == 0
}

// Status returns the scheduler view of a profession.
func (e *Engine) Status(p profession.ID) LaneStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := LaneStatus{Profession: p, Idle: true, Queued: e.queue.QueuedFor(p)}
	if l, ok := e.lanes[p]; ok && !l.idle() {
		if job, ok := e.queue.Get(l.activeID); ok {
			st.Idle = false
			st.Active = &job
		}
	}
	return st
}

// Profession returns the progression view of a profession.
func (e *Engine) Profession(p profession.ID) ProfessionStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.professionStatus(p)
}

// Professions returns the progression view of every profession.
func (e *Engine) Professions() []ProfessionStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	all := profession.All()
	out := make([]ProfessionStatus, 0, len(all))
	for _, p := range all {
		out = append(out, e.professionStatus(p.ID))
	}
	return out
}

func (e *Engine) professionStatus(id profession.ID) ProfessionStatus {
	p, _ := profession.Lookup(id)
	st := e.tracker.Get(id)
	return ProfessionStatus{
		Profession: p,
		State:      st,
		Rung:       profession.LevelInfo(st.Level),
		Progress:   e.tracker.Progress(id),
	}
}

// KnownRecipes returns the catalog recipes a profession has learned.
func (e *Engine) KnownRecipes(p profession.ID) []recipes.Recipe {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []recipes.Recipe
	for _, r := range e.catalog.RecipesFor(p) {
		if e.known.Knows(p, r.ID) {
			out = append(out, r)
		}
	}
	return out
}

// AvailableRecipes returns every catalog recipe of a profession.
func (e *Engine) AvailableRecipes(p profession.ID) []recipes.Recipe {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog.RecipesFor(p)
}

// Knows reports whether a profession has learned a recipe.
func (e *Engine) Knows(p profession.ID, recipeID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.known.Knows(p, recipeID)
}

// Recipe looks up a catalog recipe.
func (e *Engine) Recipe(id string) (recipes.Recipe, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog.Get(id)
}

// Available returns the ledger quantity of an item kind.
func (e *Engine) Available(kind string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Available(kind)
}

// ItemName returns the display name of an item kind.
func (e *Engine) ItemName(kind string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.itemName(kind)
}

// LoadReport returns what startup recovery did.
func (e *Engine) LoadReport() LoadReport {
	return e.report
}

func (e *Engine) laneIDs() []profession.ID {
	seen := make(map[profession.ID]bool, len(e.lanes))
	for p := range e.lanes {
		seen[p] = true
	}
	for _, j := range e.queue.jobs {
		seen[j.Profession()] = true
	}
	ids := make([]profession.ID, 0, len(seen))
	for p := range seen {
		ids = append(ids, p)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (e *Engine) emit(ctx context.Context, events ...notify.Event) {
	if e.sink == nil {
		return
	}
	for _, ev := range events {
		if err := e.sink.Append(ctx, ev); err != nil {
			e.log.Error("notification not delivered", "error", err, "kind", ev.Kind)
		}
	}
}

// failure builds the crafting_failed notification for a rejected request.
func failure(name string, p profession.ID, recipeID, reason string, now time.Time) notify.Event {
	return notify.Event{
		Kind:       notify.KindCraftingFailed,
		Message:    fmt.Sprintf("Cannot craft %s: %s", name, reason),
		Timestamp:  now,
		Profession: string(p),
		RecipeID:   recipeID,
	}
}

// reason renders a craftability error for a player.
func (e *Engine) reason(err error) string {
	var (
		skill    *InsufficientSkillError
		material *InsufficientMaterialError
	)
	switch {
	case errors.As(err, &skill):
		return "Insufficient skill level"
	case errors.As(err, &material):
		return fmt.Sprintf("Need %d %s (have %d)", material.Needed, e.itemName(material.Kind), material.Have)
	}
	return err.Error()
}

func (e *Engine) itemName(kind string) string {
	if t, ok := e.items.Resolve(kind); ok && t.Name != "" {
		return t.Name
	}
	return kind
}

func learnedEvent(p profession.ID, recipeID, name string, now time.Time) notify.Event {
	return notify.Event{
		Kind:       notify.KindRecipeLearned,
		Message:    fmt.Sprintf("Learned %s (%s).", name, profession.DisplayName(p)),
		Timestamp:  now,
		Profession: string(p),
		RecipeID:   recipeID,
	}
}

func recipeName(r recipes.Recipe) string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

func newJobID() string {
	return uuid.NewString()
}
