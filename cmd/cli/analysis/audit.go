package analysis

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/fsaudit/internal/auditor"
	"github.com/temirov/fsaudit/internal/statements"
	flagutils "github.com/temirov/fsaudit/internal/utils/flags"
)

const (
	auditUseConstant                 = "audit <statement-file> [statement-file ...]"
	auditShortDescription            = "Check financial statements for internal consistency"
	auditLongDescription             = "audit loads statement documents, runs the rule battery against each one and prints a report per document in argument order."
	auditFailOnErrorFlagName         = "fail-on-error"
	auditFailOnErrorFlagDescription  = "Exit with an error when any document fails its audit"
	auditFailedReportsTemplate       = "audit failed: %d of %d documents did not pass"
	auditRenderErrorTemplateConstant = "failed to render audit report for %s: %w"
	auditStartedLogMessageConstant   = "Starting statement audit"
	auditDocumentCountLogKeyConstant = "documents"
	auditConcurrencyLogKeyConstant   = "concurrency"
	auditToleranceLogKeyConstant     = "tolerance"
)

// AuditCommandBuilder assembles the audit command.
type AuditCommandBuilder struct {
	LoggerProvider               LoggerProvider
	FileReader                   statements.FileReader
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() AuditConfiguration
}

// Build constructs the audit command.
func (builder *AuditCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   auditUseConstant,
		Short: auditShortDescription,
		Long:  auditLongDescription,
		RunE:  builder.run,
	}

	registerFormatFlag(command)
	registerConcurrencyFlag(command)
	var failOnError bool
	flagutils.AddToggleFlag(command.Flags(), &failOnError, auditFailOnErrorFlagName, false, auditFailOnErrorFlagDescription)

	return command, nil
}

func (builder *AuditCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	documentPaths, pathsError := requireDocumentPaths(command, arguments)
	if pathsError != nil {
		return pathsError
	}

	renderer, rendererError := resolveRenderer(command, configuration.Format)
	if rendererError != nil {
		return rendererError
	}

	failOnError, failOnErrorFlagError := resolveFailOnError(command, configuration.FailOnError)
	if failOnErrorFlagError != nil {
		return failOnErrorFlagError
	}
	concurrency, concurrencyError := resolveConcurrency(command, configuration.Concurrency)
	if concurrencyError != nil {
		return concurrencyError
	}

	logger := resolveLogger(builder.LoggerProvider)
	observer := resolveObserver(logger, builder.HumanReadableLoggingProvider)
	statementAuditor := auditor.New(configuration.Thresholds())

	logger.Debug(
		auditStartedLogMessageConstant,
		zap.Int(auditDocumentCountLogKeyConstant, len(documentPaths)),
		zap.Int(auditConcurrencyLogKeyConstant, concurrency),
		zap.String(auditToleranceLogKeyConstant, statementAuditor.Thresholds().Tolerance.String()),
	)

	outcomes, batchError := processDocuments(command.Context(), statements.NewLoader(builder.FileReader), documentPaths, concurrency, func(model statements.Model) (auditor.Report, error) {
		return statementAuditor.Audit(model), nil
	})
	if batchError != nil {
		return batchError
	}

	failedDocuments, failuresError := reportFailures(outcomes, observer, command.ErrOrStderr())
	if failuresError != nil {
		return failuresError
	}

	failingReports := 0
	for _, outcome := range outcomes {
		if outcome.failure != nil {
			continue
		}
		observer.DocumentAudited(outcome.documentPath, outcome.result)
		if !outcome.result.OverallPass {
			failingReports++
		}
		if renderError := renderer.RenderAudit(command.OutOrStdout(), outcome.result); renderError != nil {
			return fmt.Errorf(auditRenderErrorTemplateConstant, outcome.documentPath, renderError)
		}
	}

	if failOnError && failingReports+failedDocuments > 0 {
		return fmt.Errorf(auditFailedReportsTemplate, failingReports+failedDocuments, len(documentPaths))
	}
	return nil
}

func resolveFailOnError(command *cobra.Command, configuredFailOnError bool) (bool, error) {
	if !command.Flags().Changed(auditFailOnErrorFlagName) {
		return configuredFailOnError, nil
	}
	return command.Flags().GetBool(auditFailOnErrorFlagName)
}

func (builder *AuditCommandBuilder) resolveConfiguration() AuditConfiguration {
	if builder.ConfigurationProvider == nil {
		defaults := DefaultToolsConfiguration()
		return defaults.Audit
	}

	provided := builder.ConfigurationProvider()
	return provided.sanitize()
}
