package analysis

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/fsaudit/internal/benford"
	"github.com/temirov/fsaudit/internal/statements"
)

const (
	benfordUseConstant                 = "benford <statement-file> [statement-file ...]"
	benfordShortDescription            = "Compare transaction leading digits with Benford's Law"
	benfordLongDescription             = "benford analyses the transactions of each statement document and reports the first-digit distribution, its mean absolute deviation and the conformity category."
	benfordRenderErrorTemplateConstant = "failed to render benford analysis for %s: %w"
	benfordStartedLogMessageConstant   = "Starting Benford analysis"
	benfordDocumentCountLogKeyConstant = "documents"
	benfordMinimumSampleLogKeyConstant = "minimum_sample_size"
)

// BenfordCommandBuilder assembles the benford command.
type BenfordCommandBuilder struct {
	LoggerProvider               LoggerProvider
	FileReader                   statements.FileReader
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() BenfordConfiguration
}

// Build constructs the benford command.
func (builder *BenfordCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   benfordUseConstant,
		Short: benfordShortDescription,
		Long:  benfordLongDescription,
		RunE:  builder.run,
	}

	registerFormatFlag(command)
	registerConcurrencyFlag(command)

	return command, nil
}

func (builder *BenfordCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	documentPaths, pathsError := requireDocumentPaths(command, arguments)
	if pathsError != nil {
		return pathsError
	}

	renderer, rendererError := resolveRenderer(command, configuration.Format)
	if rendererError != nil {
		return rendererError
	}

	concurrency, concurrencyError := resolveConcurrency(command, configuration.Concurrency)
	if concurrencyError != nil {
		return concurrencyError
	}

	logger := resolveLogger(builder.LoggerProvider)
	observer := resolveObserver(logger, builder.HumanReadableLoggingProvider)
	analyzer := benford.NewAnalyzer(configuration.Thresholds())

	logger.Debug(
		benfordStartedLogMessageConstant,
		zap.Int(benfordDocumentCountLogKeyConstant, len(documentPaths)),
		zap.Int(benfordMinimumSampleLogKeyConstant, analyzer.Thresholds().MinimumRecommendedSampleSize),
	)

	type subjectResult struct {
		subject string
		result  benford.Result
	}

	outcomes, batchError := processDocuments(command.Context(), statements.NewLoader(builder.FileReader), documentPaths, concurrency, func(model statements.Model) (subjectResult, error) {
		result, analyzeError := analyzer.Analyze(model.Transactions())
		if analyzeError != nil {
			return subjectResult{}, analyzeError
		}
		return subjectResult{subject: model.Subject(), result: result}, nil
	})
	if batchError != nil {
		return batchError
	}

	if _, failuresError := reportFailures(outcomes, observer, command.ErrOrStderr()); failuresError != nil {
		return failuresError
	}

	for _, outcome := range outcomes {
		if outcome.failure != nil {
			continue
		}
		observer.DocumentAnalyzed(outcome.documentPath, outcome.result.result)
		if renderError := renderer.RenderBenford(command.OutOrStdout(), outcome.result.subject, outcome.result.result); renderError != nil {
			return fmt.Errorf(benfordRenderErrorTemplateConstant, outcome.documentPath, renderError)
		}
	}
	return nil
}

func (builder *BenfordCommandBuilder) resolveConfiguration() BenfordConfiguration {
	if builder.ConfigurationProvider == nil {
		defaults := DefaultToolsConfiguration()
		return defaults.Benford
	}

	provided := builder.ConfigurationProvider()
	return provided.sanitize()
}
