// Package ui renders CLI reports with lipgloss styles.
//
// [Palette] holds the named styles. The render functions build plain strings so commands can write them to any [io.Writer];
// lipgloss drops colors automatically when the output is not a terminal.
package ui
