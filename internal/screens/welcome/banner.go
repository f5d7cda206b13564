package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prism/internal/skive"
	"github.com/abhisek/prism/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██████╗ ██╗███████╗███╗   ███╗
 ██╔══██╗██╔══██╗██║██╔════╝████╗ ████║
 ██████╔╝██████╔╝██║███████╗██╔████╔██║
 ██╔═══╝ ██╔══██╗██║╚════██║██║╚██╔╝██║
 ██║     ██║  ██║██║███████║██║ ╚═╝ ██║
 ╚═╝     ╚═╝  ╚═╝╚═╝╚══════╝╚═╝     ╚═╝`

const bannerCompact = "P R I S M"

// RenderBanner returns the PRISM banner in the primary color, or a compact
// fallback below 42 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 42 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

// renderSpectrum draws the first n SKIVE domain names, each in its own
// color, the way light splits through a prism.
func renderSpectrum(n int) string {
	parts := make([]string, 0, len(skive.AllDomains))
	for i, d := range skive.AllDomains {
		if i >= n {
			break
		}
		parts = append(parts, lipgloss.NewStyle().
			Foreground(theme.DomainColor(d)).
			Bold(true).
			Render(d.DisplayName()))
	}
	return strings.Join(parts, lipgloss.NewStyle().Foreground(theme.Border).Render("  ·  "))
}
