package core

// Color is a terminal palette entry used when reporting board state.
// Values map to ANSI colors in the CLI.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorOrange
	ColorGray
	ColorBrightGreen
)
