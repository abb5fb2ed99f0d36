package ui

import (
	"fmt"
	"strings"
)

// OutputFormat selects how results are rendered.
type OutputFormat string

// Supported output formats.
const (
	OutputFormatConsole OutputFormat = "console"
	OutputFormatJSON    OutputFormat = "json"
)

const unsupportedOutputFormatTemplateConstant = "unsupported output format: %s"

// OutputFormatChoices lists the accepted format names.
func OutputFormatChoices() []string {
	return []string{string(OutputFormatConsole), string(OutputFormatJSON)}
}

// ParseOutputFormat normalizes a format name.
func ParseOutputFormat(rawFormat string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(rawFormat))) {
	case OutputFormatConsole:
		return OutputFormatConsole, nil
	case OutputFormatJSON:
		return OutputFormatJSON, nil
	default:
		return "", fmt.Errorf(unsupportedOutputFormatTemplateConstant, rawFormat)
	}
}
