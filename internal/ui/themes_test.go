package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitTheme_NoColorFlag(t *testing.T) {
	defer SetTheme(DarkTheme)

	InitTheme(true)
	assert.Equal(t, "none", CurrentTheme().Name)
	assert.Empty(t, ColorError())
	assert.Empty(t, ColorReset())
}

func TestInitTheme_NoColorEnv(t *testing.T) {
	defer SetTheme(DarkTheme)
	t.Setenv("NO_COLOR", "1")

	InitTheme(false)
	assert.Equal(t, "none", CurrentTheme().Name)
}

func TestInitTheme_Default(t *testing.T) {
	defer SetTheme(DarkTheme)
	t.Setenv("NO_COLOR", "")

	InitTheme(false)
	assert.Equal(t, "dark", CurrentTheme().Name)
	assert.NotEmpty(t, ColorSuccess())
}
