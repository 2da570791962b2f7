package config

import "github.com/fatih/color"

// Color constants for logging
const (
	ColorGreen = color.FgGreen
	ColorCyan  = color.FgCyan
)
