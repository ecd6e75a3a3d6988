package crafting

import (
	"fmt"
	"time"

	"github.com/abhisek/craftq/internal/notify"
	"github.com/abhisek/craftq/internal/profession"
	"github.com/abhisek/craftq/internal/progression"
)

// Completion describes a finalized craft job.
type Completion struct {
	Job           Job
	CompletedAt   time.Time
	OutputKind    string
	OutputQty     int
	OutputDropped bool
	Award         progression.AwardResult
}

// finalize removes a finished job, produces its output and awards
// experience. The caller holds e.mu.
func (e *Engine) finalize(job Job, at time.Time) (Completion, []notify.Event) {
	e.queue.Remove(job.ID)
	job.Status = StatusCompleted
	job.Progress = 100

	r := job.Recipe
	c := Completion{
		Job:         job,
		CompletedAt: at,
		OutputKind:  r.OutputItemKind,
		OutputQty:   r.Output(),
	}

	tmpl, ok := e.items.Resolve(r.OutputItemKind)
	if !ok {
		c.OutputDropped = true
		e.log.Warn("craft output dropped", "error", ErrUnresolvableOutput,
			"recipe", r.ID, "item_kind", r.OutputItemKind, "job_id", job.ID)
	} else if err := e.inv.AddFromTemplate(tmpl, c.OutputQty); err != nil {
		c.OutputDropped = true
		e.log.Error("craft output not stored", "error", err, "recipe", r.ID, "job_id", job.ID)
	}

	c.Award = e.tracker.Award(r.Profession, r.Reward())
	e.log.Debug("craft job completed", "profession", r.Profession, "job_id", job.ID,
		"recipe", r.ID, "level", c.Award.After.Level, "experience", c.Award.After.Experience)

	base := notify.Event{
		Timestamp:  at,
		Profession: string(r.Profession),
		RecipeID:   r.ID,
		JobID:      job.ID,
	}

	crafted := base
	crafted.Kind = notify.KindItemCrafted
	crafted.ItemKind = r.OutputItemKind
	if c.OutputDropped {
		crafted.Message = fmt.Sprintf("Crafted %s, but the output item %q could not be created.", recipeName(r), r.OutputItemKind)
	} else {
		crafted.Quantity = c.OutputQty
		crafted.Message = fmt.Sprintf("Crafted %dx %s.", c.OutputQty, tmpl.Name)
	}

	progress := base
	name := profession.DisplayName(r.Profession)
	switch {
	case c.Award.LeveledUp:
		progress.Kind = notify.KindSkillIncrease
		progress.Quantity = c.Award.After.Level
		progress.Message = fmt.Sprintf("%s skill increased to %s!", name, profession.LevelInfo(c.Award.After.Level).Name)
	case c.Award.Capped:
		progress.Kind = notify.KindExperienceGained
		progress.Message = fmt.Sprintf("%s is at %s; no experience gained.", name, profession.LevelInfo(profession.MaxLevel).Name)
	default:
		progress.Kind = notify.KindExperienceGained
		progress.Quantity = c.Award.Gained
		progress.Message = fmt.Sprintf("Gained %d %s experience.", c.Award.Gained, name)
	}

	return c, []notify.Event{crafted, progress}
}
