package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/temirov/fsaudit/internal/auditor"
	"github.com/temirov/fsaudit/internal/benchmark"
	"github.com/temirov/fsaudit/internal/benford"
)

const (
	auditHeaderTemplateConstant          = "Audit report: %s\n"
	auditSummaryTemplateConstant         = "Result: %s (%d errors, %d warnings, %d rules evaluated)\n"
	auditFindingTemplateConstant         = "  [%s] %s (%s): %s\n"
	auditPassLabelConstant               = "PASS"
	auditFailLabelConstant               = "FAIL"
	benfordHeaderTemplateConstant        = "Benford analysis: %s\n"
	benfordSampleTemplateConstant        = "Sample size: %d (%d discarded)\n"
	benfordTableHeaderConstant           = "Digit\tObserved\tExpected\tObserved %\tExpected %\tDeviation\t\n"
	benfordTableRowTemplateConstant      = "%d\t%d\t%.1f\t%.2f%%\t%.2f%%\t%+.2f%%\t%s\n"
	benfordSummaryTemplateConstant       = "MAD: %.5f | %s (%s)\n"
	benfordAdvisoryTemplateConstant      = "Advisory: %s\n"
	benchmarkHeaderTemplateConstant      = "Benchmark comparison: %s\n"
	benchmarkTableHeaderConstant         = "Ratio\tCompany\tBenchmark\tDifference\tDirection\n"
	benchmarkTableRowTemplateConstant    = "%s\t%s\t%s\t%s\t%s\n"
	benchmarkUnavailableTemplateConstant = "Unavailable: %s\n"
	benchmarkEmptyMessageConstant        = "No benchmark ratios matched.\n"
	benchmarkValuePrecisionConstant      = 2
	heatBarOverCharacterConstant         = "+"
	heatBarUnderCharacterConstant        = "-"
	heatBarMaximumWidthConstant          = 20
	percentScaleConstant                 = 100
	tabwriterMinimumWidthConstant        = 0
	tabwriterTabWidthConstant            = 4
	tabwriterPaddingConstant             = 2
	tabwriterPaddingCharacterConstant    = ' '
	jsonIndentConstant                   = "  "
	listSeparatorConstant                = ", "
)

// Renderer writes analysis results to a writer.
type Renderer interface {
	RenderAudit(writer io.Writer, report auditor.Report) error
	RenderBenford(writer io.Writer, subject string, result benford.Result) error
	RenderBenchmark(writer io.Writer, subject string, comparison benchmark.Comparison) error
}

// NewRenderer returns the renderer for the requested format.
func NewRenderer(format OutputFormat) (Renderer, error) {
	switch format {
	case OutputFormatConsole:
		return ConsoleRenderer{}, nil
	case OutputFormatJSON:
		return JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf(unsupportedOutputFormatTemplateConstant, format)
	}
}

// ConsoleRenderer produces aligned plain text.
type ConsoleRenderer struct{}

// RenderAudit writes the report heading, summary and findings in rule order.
func (ConsoleRenderer) RenderAudit(writer io.Writer, report auditor.Report) error {
	var builder strings.Builder
	fmt.Fprintf(&builder, auditHeaderTemplateConstant, report.Subject)

	resultLabel := auditFailLabelConstant
	if report.OverallPass {
		resultLabel = auditPassLabelConstant
	}
	fmt.Fprintf(&builder, auditSummaryTemplateConstant, resultLabel, report.Counts.Errors, report.Counts.Warnings, report.RulesEvaluated)
	for _, finding := range report.Findings {
		fmt.Fprintf(&builder, auditFindingTemplateConstant, finding.Severity, finding.Code, finding.Category, finding.Message)
	}

	_, writeError := io.WriteString(writer, builder.String())
	return writeError
}

// RenderBenford writes the digit table with a deviation bar per digit.
func (ConsoleRenderer) RenderBenford(writer io.Writer, subject string, result benford.Result) error {
	if _, writeError := fmt.Fprintf(writer, benfordHeaderTemplateConstant+benfordSampleTemplateConstant, subject, result.SampleSize, result.DiscardedCount); writeError != nil {
		return writeError
	}

	tableWriter := newTableWriter(writer)
	fmt.Fprint(tableWriter, benfordTableHeaderConstant)
	for _, frequency := range result.Table {
		fmt.Fprintf(
			tableWriter,
			benfordTableRowTemplateConstant,
			frequency.Digit,
			frequency.ObservedCount,
			frequency.ExpectedCount,
			frequency.ObservedProportion*percentScaleConstant,
			frequency.ExpectedProportion*percentScaleConstant,
			frequency.Deviation*percentScaleConstant,
			DeviationBar(frequency.Deviation),
		)
	}
	if flushError := tableWriter.Flush(); flushError != nil {
		return flushError
	}

	if _, writeError := fmt.Fprintf(writer, benfordSummaryTemplateConstant, result.MeanAbsoluteDeviation, result.Conformity, result.Conformity.Description()); writeError != nil {
		return writeError
	}
	if result.LowSampleAdvisory {
		if _, writeError := fmt.Fprintf(writer, benfordAdvisoryTemplateConstant, result.Advisory); writeError != nil {
			return writeError
		}
	}
	return nil
}

// RenderBenchmark writes one row per matched ratio.
func (ConsoleRenderer) RenderBenchmark(writer io.Writer, subject string, comparison benchmark.Comparison) error {
	if _, writeError := fmt.Fprintf(writer, benchmarkHeaderTemplateConstant, subject); writeError != nil {
		return writeError
	}

	if len(comparison.Variances) == 0 {
		if _, writeError := io.WriteString(writer, benchmarkEmptyMessageConstant); writeError != nil {
			return writeError
		}
	} else {
		tableWriter := newTableWriter(writer)
		fmt.Fprint(tableWriter, benchmarkTableHeaderConstant)
		for _, variance := range comparison.Variances {
			fmt.Fprintf(
				tableWriter,
				benchmarkTableRowTemplateConstant,
				variance.Ratio,
				variance.Company.StringFixed(benchmarkValuePrecisionConstant),
				variance.Benchmark.StringFixed(benchmarkValuePrecisionConstant),
				variance.Difference.StringFixed(benchmarkValuePrecisionConstant),
				variance.Direction,
			)
		}
		if flushError := tableWriter.Flush(); flushError != nil {
			return flushError
		}
	}

	if len(comparison.Unavailable) > 0 {
		unavailableNames := make([]string, 0, len(comparison.Unavailable))
		for _, name := range comparison.Unavailable {
			unavailableNames = append(unavailableNames, string(name))
		}
		if _, writeError := fmt.Fprintf(writer, benchmarkUnavailableTemplateConstant, strings.Join(unavailableNames, listSeparatorConstant)); writeError != nil {
			return writeError
		}
	}
	return nil
}

// DeviationBar draws one character per percentage point of deviation, capped
// at a fixed width. Over-represented digits use "+" and under-represented "-".
func DeviationBar(deviation float64) string {
	width := int(math.Round(math.Abs(deviation) * percentScaleConstant))
	if width > heatBarMaximumWidthConstant {
		width = heatBarMaximumWidthConstant
	}
	character := heatBarOverCharacterConstant
	if deviation < 0 {
		character = heatBarUnderCharacterConstant
	}
	return strings.Repeat(character, width)
}

func newTableWriter(writer io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(writer, tabwriterMinimumWidthConstant, tabwriterTabWidthConstant, tabwriterPaddingConstant, tabwriterPaddingCharacterConstant, 0)
}

// JSONRenderer emits indented JSON documents, one per result.
type JSONRenderer struct{}

type benfordDocument struct {
	Subject string         `json:"subject"`
	Result  benford.Result `json:"result"`
}

type benchmarkDocument struct {
	Subject    string               `json:"subject"`
	Comparison benchmark.Comparison `json:"comparison"`
}

// RenderAudit encodes the report.
func (JSONRenderer) RenderAudit(writer io.Writer, report auditor.Report) error {
	return encodeJSON(writer, report)
}

// RenderBenford encodes the result together with its subject.
func (JSONRenderer) RenderBenford(writer io.Writer, subject string, result benford.Result) error {
	return encodeJSON(writer, benfordDocument{Subject: subject, Result: result})
}

// RenderBenchmark encodes the comparison together with its subject.
func (JSONRenderer) RenderBenchmark(writer io.Writer, subject string, comparison benchmark.Comparison) error {
	return encodeJSON(writer, benchmarkDocument{Subject: subject, Comparison: comparison})
}

func encodeJSON(writer io.Writer, value any) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", jsonIndentConstant)
	return encoder.Encode(value)
}
