package workshop

import (
	"image/color"

	"github.com/abhisek/craftq/internal/notify"
	"github.com/abhisek/craftq/internal/ui/theme"
)

func kindColor(k notify.Kind) color.Color {
	switch k {
	case notify.KindCraftingFailed:
		return theme.Error
	case notify.KindItemCrafted:
		return theme.Success
	case notify.KindSkillIncrease:
		return theme.Primary
	case notify.KindRecipeLearned:
		return theme.Accent
	default:
		return theme.Text
	}
}
