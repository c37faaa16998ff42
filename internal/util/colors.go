package util

import "github.com/fatih/color"

var colorsOptions = map[string]color.Attribute{
	"red":       color.FgHiRed,
	"green":     color.FgGreen,
	"yellow":    color.FgYellow,
	"cyan":      color.FgCyan,
	"faint":     color.Faint,
	"underline": color.Underline,
	"bold":      color.Bold,
}

// ColorOutput styles text with the named options. Unknown names are ignored.
func ColorOutput(text string, colorOptions ...string) string {
	attributes := []color.Attribute{}
	for _, option := range colorOptions {
		if o, ok := colorsOptions[option]; ok {
			attributes = append(attributes, o)
		}
	}
	c := color.New(attributes...)
	return c.Sprint(text)
}

func Success(text string) string {
	return ColorOutput(text, "green", "bold")
}

func Warning(text string) string {
	return ColorOutput(text, "yellow")
}

func Failure(text string) string {
	return ColorOutput(text, "red", "bold")
}
