package loading

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillnav/internal/ui/theme"
)

const bannerArt = `
 ███████╗██╗  ██╗██╗██╗     ██╗
 ██╔════╝██║ ██╔╝██║██║     ██║
 ███████╗█████╔╝ ██║██║     ██║
 ╚════██║██╔═██╗ ██║██║     ██║
 ███████║██║  ██╗██║███████╗███████╗
 ╚══════╝╚═╝  ╚═╝╚═╝╚══════╝╚══════╝
      N  A  V  I  G  A  T  O  R`

const bannerCompact = "S K I L L   N A V I G A T O R"

// RenderBanner returns the banner styled in the primary color. Uses a
// compact fallback for terminals narrower than 40 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
