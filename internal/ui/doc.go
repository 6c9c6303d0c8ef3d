// Package ui holds the terminal color themes shared by the CLI output paths.
// The active theme is process-global and guarded by a mutex; it is selected
// once at startup from the --no-color flag and the NO_COLOR convention.
package ui
