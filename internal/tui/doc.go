// Package tui implements the inspector terminal user interface.
//
// Built with Charmbracelet's BubbleTea, Lipgloss, and Bubbles
// libraries. The TUI holds no domain state: it renders the session
// model and views workspace, and translates key and mouse input back
// into model operations.
//
// Component architecture:
//
//	model.go    — root model, message routing, Init/Update, debounce
//	theme.go    — centralized color + style definitions
//	header.go   — top bar and footer with key hints
//	outline.go  — full-extent overview with the interval selector
//	detail.go   — shown interval at full resolution
//	itemlist.go — item list with visibility and colors
//	markings.go — markings of the selected item
//	helpers.go  — column↔domain projection, sparklines, truncation
package tui
