package analysis

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/fsaudit/internal/benchmark"
	"github.com/temirov/fsaudit/internal/statements"
)

const (
	benchmarkUseConstant                 = "benchmark <statement-file>"
	benchmarkShortDescription            = "Compare financial ratios with industry benchmarks"
	benchmarkLongDescription             = "benchmark derives margin, return and leverage ratios from one statement document and compares them with the configured industry table."
	benchmarkSingleDocumentMessage       = "benchmark accepts exactly one statement document"
	benchmarkEmptyTableMessageConstant   = "no benchmark ratios configured; set tools.benchmark.ratios"
	benchmarkRenderErrorTemplateConstant = "failed to render benchmark comparison for %s: %w"
	benchmarkComparedLogMessageConstant  = "Compared ratios with benchmarks"
	benchmarkDocumentLogKeyConstant      = "document"
	benchmarkMatchedLogKeyConstant       = "matched"
	benchmarkUnavailableLogKeyConstant   = "unavailable"
)

// BenchmarkCommandBuilder assembles the benchmark command.
type BenchmarkCommandBuilder struct {
	LoggerProvider        LoggerProvider
	FileReader            statements.FileReader
	ConfigurationProvider func() BenchmarkConfiguration
}

// Build constructs the benchmark command.
func (builder *BenchmarkCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   benchmarkUseConstant,
		Short: benchmarkShortDescription,
		Long:  benchmarkLongDescription,
		RunE:  builder.run,
	}

	registerFormatFlag(command)

	return command, nil
}

func (builder *BenchmarkCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	documentPaths, pathsError := requireDocumentPaths(command, arguments)
	if pathsError != nil {
		return pathsError
	}
	if len(documentPaths) != 1 {
		return errors.New(benchmarkSingleDocumentMessage)
	}
	if len(configuration.Ratios) == 0 {
		return errors.New(benchmarkEmptyTableMessageConstant)
	}

	renderer, rendererError := resolveRenderer(command, configuration.Format)
	if rendererError != nil {
		return rendererError
	}

	documentPath := documentPaths[0]
	model, loadError := statements.NewLoader(builder.FileReader).LoadFile(documentPath)
	if loadError != nil {
		return loadError
	}

	comparison := benchmark.NewComparator(configuration.Ratios).Compare(benchmark.ComputeRatios(model))

	logger := resolveLogger(builder.LoggerProvider)
	logger.Debug(
		benchmarkComparedLogMessageConstant,
		zap.String(benchmarkDocumentLogKeyConstant, documentPath),
		zap.Int(benchmarkMatchedLogKeyConstant, len(comparison.Variances)),
		zap.Int(benchmarkUnavailableLogKeyConstant, len(comparison.Unavailable)),
	)

	if renderError := renderer.RenderBenchmark(command.OutOrStdout(), model.Subject(), comparison); renderError != nil {
		return fmt.Errorf(benchmarkRenderErrorTemplateConstant, documentPath, renderError)
	}
	return nil
}

func (builder *BenchmarkCommandBuilder) resolveConfiguration() BenchmarkConfiguration {
	if builder.ConfigurationProvider == nil {
		defaults := DefaultToolsConfiguration()
		return defaults.Benchmark.sanitize()
	}

	provided := builder.ConfigurationProvider()
	return provided.sanitize()
}
