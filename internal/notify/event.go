package notify

import "time"

// Kind classifies a crafting notification.
type Kind string

const (
	KindCraftingStarted  Kind = "crafting_started"
	KindCraftingFailed   Kind = "crafting_failed"
	KindItemCrafted      Kind = "item_crafted"
	KindSkillIncrease    Kind = "skill_increase"
	KindExperienceGained Kind = "experience_gained"
	KindRecipeLearned    Kind = "recipe_learned"
)

// Icon returns the journal glyph for the kind.
func (k Kind) Icon() string {
	switch k {
	case KindCraftingStarted:
		return "⚒"
	case KindCraftingFailed:
		return "✗"
	case KindItemCrafted:
		return "✦"
	case KindSkillIncrease:
		return "▲"
	case KindExperienceGained:
		return "+"
	case KindRecipeLearned:
		return "✎"
	default:
		return "·"
	}
}

// Event is one user-facing notification.
type Event struct {
	Kind       Kind
	Message    string
	Timestamp  time.Time
	Profession string
	RecipeID   string
	JobID      string
	ItemKind   string
	Quantity   int
}
