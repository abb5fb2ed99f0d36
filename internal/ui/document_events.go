package ui

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/fsaudit/internal/auditor"
	"github.com/temirov/fsaudit/internal/benford"
)

const (
	documentFailedMessageTemplateConstant   = "Skipped %s: %s"
	auditPassedMessageTemplateConstant      = "Audited %s: passed with %d warnings"
	auditFailedMessageTemplateConstant      = "Audited %s: failed with %d errors and %d warnings"
	benfordScoredMessageTemplateConstant    = "Analyzed %s: %s (MAD %.5f)"
	benfordLowSampleMessageTemplateConstant = "%s: %s"
	unknownFailureMessageConstant           = "unknown error"
	documentFailedEventConstant             = "document failed"
	documentAuditedEventConstant            = "document audited"
	documentAnalyzedEventConstant           = "document analyzed"
	documentPathFieldConstant               = "document"
	overallPassFieldConstant                = "overall_pass"
	errorCountFieldConstant                 = "error_count"
	warningCountFieldConstant               = "warning_count"
	conformityFieldConstant                 = "conformity"
	meanAbsoluteDeviationFieldConstant      = "mad"
	sampleSizeFieldConstant                 = "sample_size"
	lowSampleFieldConstant                  = "low_sample"
)

// DocumentEventObserver receives per-document progress from batch commands.
type DocumentEventObserver interface {
	DocumentFailed(documentPath string, failure error)
	DocumentAudited(documentPath string, report auditor.Report)
	DocumentAnalyzed(documentPath string, result benford.Result)
}

// DocumentEventFormatter builds human-readable messages for document events.
type DocumentEventFormatter struct{}

// BuildFailureMessage describes a document that could not be processed.
func (formatter DocumentEventFormatter) BuildFailureMessage(documentPath string, failure error) string {
	failureMessage := unknownFailureMessageConstant
	if failure != nil {
		failureMessage = failure.Error()
	}
	return fmt.Sprintf(documentFailedMessageTemplateConstant, documentPath, failureMessage)
}

// BuildAuditMessage summarizes an audit outcome.
func (formatter DocumentEventFormatter) BuildAuditMessage(documentPath string, report auditor.Report) string {
	if report.OverallPass {
		return fmt.Sprintf(auditPassedMessageTemplateConstant, documentPath, report.Counts.Warnings)
	}
	return fmt.Sprintf(auditFailedMessageTemplateConstant, documentPath, report.Counts.Errors, report.Counts.Warnings)
}

// BuildAnalysisMessage summarizes a Benford outcome.
func (formatter DocumentEventFormatter) BuildAnalysisMessage(documentPath string, result benford.Result) string {
	return fmt.Sprintf(benfordScoredMessageTemplateConstant, documentPath, result.Conformity, result.MeanAbsoluteDeviation)
}

// BuildLowSampleMessage repeats the low-sample advisory for a document.
func (formatter DocumentEventFormatter) BuildLowSampleMessage(documentPath string, result benford.Result) string {
	return fmt.Sprintf(benfordLowSampleMessageTemplateConstant, documentPath, result.Advisory)
}

// ConsoleDocumentEventLogger reports document events through a zap logger
// configured for human-readable output.
type ConsoleDocumentEventLogger struct {
	logger    *zap.Logger
	formatter DocumentEventFormatter
}

// NewConsoleDocumentEventLogger constructs an event logger; a nil logger discards events.
func NewConsoleDocumentEventLogger(logger *zap.Logger) *ConsoleDocumentEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleDocumentEventLogger{logger: logger, formatter: DocumentEventFormatter{}}
}

// DocumentFailed logs a load or analysis failure.
func (eventLogger *ConsoleDocumentEventLogger) DocumentFailed(documentPath string, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Error(eventLogger.formatter.BuildFailureMessage(documentPath, failure))
}

// DocumentAudited logs passing audits at info level and failing ones at warn level.
func (eventLogger *ConsoleDocumentEventLogger) DocumentAudited(documentPath string, report auditor.Report) {
	if eventLogger == nil {
		return
	}
	if report.OverallPass {
		eventLogger.logger.Info(eventLogger.formatter.BuildAuditMessage(documentPath, report))
		return
	}
	eventLogger.logger.Warn(eventLogger.formatter.BuildAuditMessage(documentPath, report))
}

// DocumentAnalyzed logs the conformity category and any low-sample advisory.
func (eventLogger *ConsoleDocumentEventLogger) DocumentAnalyzed(documentPath string, result benford.Result) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildAnalysisMessage(documentPath, result))
	if result.LowSampleAdvisory {
		eventLogger.logger.Warn(eventLogger.formatter.BuildLowSampleMessage(documentPath, result))
	}
}

// StructuredDocumentEventLogger reports document events as zap fields for
// machine-readable log sinks.
type StructuredDocumentEventLogger struct {
	logger *zap.Logger
}

// NewStructuredDocumentEventLogger constructs an event logger; a nil logger discards events.
func NewStructuredDocumentEventLogger(logger *zap.Logger) *StructuredDocumentEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StructuredDocumentEventLogger{logger: logger}
}

// DocumentFailed logs a load or analysis failure.
func (eventLogger *StructuredDocumentEventLogger) DocumentFailed(documentPath string, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Error(documentFailedEventConstant, zap.String(documentPathFieldConstant, documentPath), zap.Error(failure))
}

// DocumentAudited logs the audit verdict and finding counts.
func (eventLogger *StructuredDocumentEventLogger) DocumentAudited(documentPath string, report auditor.Report) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(
		documentAuditedEventConstant,
		zap.String(documentPathFieldConstant, documentPath),
		zap.Bool(overallPassFieldConstant, report.OverallPass),
		zap.Int(errorCountFieldConstant, report.Counts.Errors),
		zap.Int(warningCountFieldConstant, report.Counts.Warnings),
	)
}

// DocumentAnalyzed logs the conformity outcome of a Benford analysis.
func (eventLogger *StructuredDocumentEventLogger) DocumentAnalyzed(documentPath string, result benford.Result) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(
		documentAnalyzedEventConstant,
		zap.String(documentPathFieldConstant, documentPath),
		zap.String(conformityFieldConstant, string(result.Conformity)),
		zap.Float64(meanAbsoluteDeviationFieldConstant, result.MeanAbsoluteDeviation),
		zap.Int(sampleSizeFieldConstant, result.SampleSize),
		zap.Bool(lowSampleFieldConstant, result.LowSampleAdvisory),
	)
}
