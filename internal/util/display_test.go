package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPalette(t *testing.T) {
	plain := Palette{}
	assert.Equal(t, "created", plain.Success("created"))

	colored := Palette{Enabled: true}
	assert.Equal(t, ColorGreen+"created"+ColorReset, colored.Success("created"))
	assert.Equal(t, ColorBold+ColorRed+"failed"+ColorReset, colored.Failure("failed"))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "abc  ", PadRight("abc", 5))
	assert.Equal(t, "abcdef", PadRight("abcdef", 3))
	// Wide runes occupy two cells
	assert.Equal(t, "日本 ", PadRight("日本", 5))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, 8, GetDisplayWidth(Truncate("git commit -m 'long message'", 8)))
}
