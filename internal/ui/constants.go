// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for consistent sizing across UI components.
const (
	// ScrollMargin is the number of items to keep visible above/below the cursor.
	ScrollMargin = 2

	// BorderHeight is the vertical space consumed by a standard panel border.
	BorderHeight = 2

	// HeaderHeight is the space for header + separator in panels.
	HeaderHeight = 2

	// PanelOverhead is the total vertical overhead (border + header + separator).
	PanelOverhead = BorderHeight + HeaderHeight

	// SidebarWidthDivisor gives the playlist sidebar 1/SidebarWidthDivisor of
	// the terminal width.
	SidebarWidthDivisor = 3

	// MinSidebarWidth keeps track names readable on narrow terminals.
	MinSidebarWidth = 24

	// MinProgressBarWidth is the minimum width for a usable progress bar.
	MinProgressBarWidth = 5

	// MinExpandedWidth is the minimum width for the expanded player bar.
	MinExpandedWidth = 40
)
