package analysis

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/fsaudit/internal/ui"
	flagutils "github.com/temirov/fsaudit/internal/utils/flags"
)

const (
	formatFlagNameConstant                   = "format"
	formatFlagDescriptionConstant            = "Output format for rendered results"
	concurrencyFlagNameConstant              = "concurrency"
	concurrencyFlagDescriptionConstant       = "Maximum number of documents processed in parallel"
	missingDocumentPathsErrorMessageConstant = "no statement documents provided; pass one or more file paths"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolveObserver(logger *zap.Logger, humanReadableLoggingProvider func() bool) ui.DocumentEventObserver {
	if humanReadableLoggingProvider != nil && humanReadableLoggingProvider() {
		return ui.NewConsoleDocumentEventLogger(logger)
	}
	return ui.NewStructuredDocumentEventLogger(logger)
}

func registerFormatFlag(command *cobra.Command) {
	var format string
	flagutils.AddChoiceFlag(command.Flags(), &format, formatFlagNameConstant, string(ui.OutputFormatConsole), ui.OutputFormatChoices(), formatFlagDescriptionConstant)
}

func registerConcurrencyFlag(command *cobra.Command) {
	command.Flags().Int(concurrencyFlagNameConstant, defaultConcurrencyConstant, concurrencyFlagDescriptionConstant)
}

// resolveRenderer prefers an explicit --format flag over the configured format.
func resolveRenderer(command *cobra.Command, configuredFormat string) (ui.Renderer, error) {
	format := configuredFormat
	if command.Flags().Changed(formatFlagNameConstant) {
		flagFormat, flagError := command.Flags().GetString(formatFlagNameConstant)
		if flagError != nil {
			return nil, flagError
		}
		format = flagFormat
	}

	outputFormat, parseError := ui.ParseOutputFormat(format)
	if parseError != nil {
		return nil, parseError
	}
	return ui.NewRenderer(outputFormat)
}

func resolveConcurrency(command *cobra.Command, configuredConcurrency int) (int, error) {
	if !command.Flags().Changed(concurrencyFlagNameConstant) {
		return sanitizeConcurrency(configuredConcurrency), nil
	}
	flagConcurrency, flagError := command.Flags().GetInt(concurrencyFlagNameConstant)
	if flagError != nil {
		return 0, flagError
	}
	return sanitizeConcurrency(flagConcurrency), nil
}

func requireDocumentPaths(command *cobra.Command, arguments []string) ([]string, error) {
	documentPaths := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 {
			continue
		}
		documentPaths = append(documentPaths, trimmedArgument)
	}
	if len(documentPaths) > 0 {
		return documentPaths, nil
	}

	if command != nil {
		_ = command.Help()
	}
	return nil, errors.New(missingDocumentPathsErrorMessageConstant)
}
