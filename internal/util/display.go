package util

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal color sequences
const (
	ColorReset   = "\033[0m"
	ColorBlue    = "\033[34m"
	ColorCyan    = "\033[36m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorRed     = "\033[31m"
	ColorMagenta = "\033[35m"
	ColorBold    = "\033[1m"
)

// Palette applies colors only when enabled, so piped output stays plain
type Palette struct {
	Enabled bool
}

func (p Palette) paint(codes, text string) string {
	if !p.Enabled {
		return text
	}
	return fmt.Sprintf("%s%s%s", codes, text, ColorReset)
}

// Header formats main header titles (Magenta + Bold)
func (p Palette) Header(text string) string {
	return p.paint(ColorBold+ColorMagenta, text)
}

// Success formats positive outcomes
func (p Palette) Success(text string) string {
	return p.paint(ColorGreen, text)
}

// Warning formats skipped or dry-run outcomes
func (p Palette) Warning(text string) string {
	return p.paint(ColorYellow, text)
}

// Failure formats errors
func (p Palette) Failure(text string) string {
	return p.paint(ColorBold+ColorRed, text)
}

// Muted formats secondary information
func (p Palette) Muted(text string) string {
	return p.paint(ColorCyan, text)
}

// GetDisplayWidth calculates the display width of a string, accounting for wide runes
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads text with spaces to the given display width
func PadRight(text string, width int) string {
	gap := width - GetDisplayWidth(text)
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}

// Truncate shortens text to the given display width, marking the cut
func Truncate(text string, width int) string {
	return runewidth.Truncate(text, width, "…")
}
