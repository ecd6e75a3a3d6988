package crafting

import (
	"errors"
	"fmt"

	"github.com/abhisek/craftq/internal/profession"
)

var (
	ErrUnknownRecipe         = errors.New("unknown recipe")
	ErrRecipeNotKnown        = errors.New("recipe not learned")
	ErrRecipeAlreadyKnown    = errors.New("recipe already learned")
	ErrRecipeIDTaken         = errors.New("recipe id belongs to a shipped recipe")
	ErrProfessionUnavailable = errors.New("profession not available")
	ErrJobNotFound           = errors.New("craft job not found")
	ErrJobActive             = errors.New("craft job is in progress")
	ErrUnresolvableOutput    = errors.New("output item kind does not resolve")
	ErrNotAScroll            = errors.New("item is not a recipe scroll")
)

// InsufficientSkillError reports a profession level below a requirement.
type InsufficientSkillError struct {
	Profession profession.ID
	Required   int
	Have       int
}

func (e *InsufficientSkillError) Error() string {
	return fmt.Sprintf("insufficient skill level: %s %d < %d", e.Profession, e.Have, e.Required)
}

// InsufficientMaterialError reports the first material shortfall.
type InsufficientMaterialError struct {
	Kind   string
	Needed int
	Have   int
}

func (e *InsufficientMaterialError) Error() string {
	return fmt.Sprintf("insufficient material: need %d %s (have %d)", e.Needed, e.Kind, e.Have)
}
