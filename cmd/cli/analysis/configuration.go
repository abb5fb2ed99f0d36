package analysis

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/temirov/fsaudit/internal/auditor"
	"github.com/temirov/fsaudit/internal/benford"
	"github.com/temirov/fsaudit/internal/ui"
)

const (
	auditConfigurationKeyConstant                 = "audit"
	benfordConfigurationKeyConstant               = "benford"
	benchmarkConfigurationKeyConstant             = "benchmark"
	configurationFormatKeyConstant                = "format"
	configurationFailOnErrorKeyConstant           = "fail_on_error"
	configurationConcurrencyKeyConstant           = "concurrency"
	configurationToleranceKeyConstant             = "tolerance"
	configurationNegativeEquityKeyConstant        = "negative_equity_warning_threshold"
	configurationGrossMarginLowerKeyConstant      = "gross_margin_lower_bound"
	configurationGrossMarginUpperKeyConstant      = "gross_margin_upper_bound"
	configurationDebtToAssetsLowerKeyConstant     = "debt_to_assets_lower_bound"
	configurationDebtToAssetsUpperKeyConstant     = "debt_to_assets_upper_bound"
	configurationCashFlowLowerMultipleKeyConstant = "operating_cash_flow_lower_multiple"
	configurationCashFlowUpperMultipleKeyConstant = "operating_cash_flow_upper_multiple"
	configurationCloseUpperBoundKeyConstant       = "close_conformity_upper_bound"
	configurationAcceptableUpperBoundKeyConstant  = "acceptable_conformity_upper_bound"
	configurationMarginalUpperBoundKeyConstant    = "marginal_conformity_upper_bound"
	configurationMinimumSampleSizeKeyConstant     = "minimum_sample_size"
	configurationKeySeparatorConstant             = "."
	defaultConcurrencyConstant                    = 4
)

// ToolsConfiguration captures the configuration sections of the analysis commands.
type ToolsConfiguration struct {
	Audit     AuditConfiguration     `mapstructure:"audit"`
	Benford   BenfordConfiguration   `mapstructure:"benford"`
	Benchmark BenchmarkConfiguration `mapstructure:"benchmark"`
}

// AuditConfiguration describes configuration values for the audit command.
type AuditConfiguration struct {
	Tolerance                      decimal.Decimal `mapstructure:"tolerance"`
	NegativeEquityWarningThreshold decimal.Decimal `mapstructure:"negative_equity_warning_threshold"`
	GrossMarginLowerBound          decimal.Decimal `mapstructure:"gross_margin_lower_bound"`
	GrossMarginUpperBound          decimal.Decimal `mapstructure:"gross_margin_upper_bound"`
	DebtToAssetsLowerBound         decimal.Decimal `mapstructure:"debt_to_assets_lower_bound"`
	DebtToAssetsUpperBound         decimal.Decimal `mapstructure:"debt_to_assets_upper_bound"`
	OperatingCashFlowLowerMultiple decimal.Decimal `mapstructure:"operating_cash_flow_lower_multiple"`
	OperatingCashFlowUpperMultiple decimal.Decimal `mapstructure:"operating_cash_flow_upper_multiple"`
	Format                         string          `mapstructure:"format"`
	FailOnError                    bool            `mapstructure:"fail_on_error"`
	Concurrency                    int             `mapstructure:"concurrency"`
}

// BenfordConfiguration describes configuration values for the benford command.
type BenfordConfiguration struct {
	CloseConformityUpperBound      float64 `mapstructure:"close_conformity_upper_bound"`
	AcceptableConformityUpperBound float64 `mapstructure:"acceptable_conformity_upper_bound"`
	MarginalConformityUpperBound   float64 `mapstructure:"marginal_conformity_upper_bound"`
	MinimumSampleSize              int     `mapstructure:"minimum_sample_size"`
	Format                         string  `mapstructure:"format"`
	Concurrency                    int     `mapstructure:"concurrency"`
}

// BenchmarkConfiguration describes configuration values for the benchmark command.
// Ratios maps ratio names to industry benchmark values.
type BenchmarkConfiguration struct {
	Ratios map[string]decimal.Decimal `mapstructure:"ratios"`
	Format string                     `mapstructure:"format"`
}

// DefaultToolsConfiguration returns baseline configuration values for the analysis commands.
func DefaultToolsConfiguration() ToolsConfiguration {
	auditThresholds := auditor.DefaultThresholds()
	benfordThresholds := benford.DefaultThresholds()
	return ToolsConfiguration{
		Audit: AuditConfiguration{
			Tolerance:                      auditThresholds.Tolerance,
			NegativeEquityWarningThreshold: auditThresholds.NegativeEquityWarningThreshold,
			GrossMarginLowerBound:          auditThresholds.GrossMarginLowerBound,
			GrossMarginUpperBound:          auditThresholds.GrossMarginUpperBound,
			DebtToAssetsLowerBound:         auditThresholds.DebtToAssetsLowerBound,
			DebtToAssetsUpperBound:         auditThresholds.DebtToAssetsUpperBound,
			OperatingCashFlowLowerMultiple: auditThresholds.OperatingCashFlowLowerMultiple,
			OperatingCashFlowUpperMultiple: auditThresholds.OperatingCashFlowUpperMultiple,
			Format:                         string(ui.OutputFormatConsole),
			FailOnError:                    false,
			Concurrency:                    defaultConcurrencyConstant,
		},
		Benford: BenfordConfiguration{
			CloseConformityUpperBound:      benfordThresholds.CloseConformityUpperBound,
			AcceptableConformityUpperBound: benfordThresholds.AcceptableConformityUpperBound,
			MarginalConformityUpperBound:   benfordThresholds.MarginalConformityUpperBound,
			MinimumSampleSize:              benfordThresholds.MinimumRecommendedSampleSize,
			Format:                         string(ui.OutputFormatConsole),
			Concurrency:                    defaultConcurrencyConstant,
		},
		Benchmark: BenchmarkConfiguration{
			Ratios: map[string]decimal.Decimal{},
			Format: string(ui.OutputFormatConsole),
		},
	}
}

// DefaultConfigurationValues produces Viper defaults for the analysis commands.
// Decimal values are emitted as strings so the decimal decode hook parses them
// without binary rounding. The benchmark table has no default here; it ships
// with the embedded configuration.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultToolsConfiguration()
	auditKey := joinConfigurationKey(rootKey, auditConfigurationKeyConstant)
	benfordKey := joinConfigurationKey(rootKey, benfordConfigurationKeyConstant)
	benchmarkKey := joinConfigurationKey(rootKey, benchmarkConfigurationKeyConstant)

	return map[string]any{
		joinConfigurationKey(auditKey, configurationToleranceKeyConstant):              defaults.Audit.Tolerance.String(),
		joinConfigurationKey(auditKey, configurationNegativeEquityKeyConstant):         defaults.Audit.NegativeEquityWarningThreshold.String(),
		joinConfigurationKey(auditKey, configurationGrossMarginLowerKeyConstant):       defaults.Audit.GrossMarginLowerBound.String(),
		joinConfigurationKey(auditKey, configurationGrossMarginUpperKeyConstant):       defaults.Audit.GrossMarginUpperBound.String(),
		joinConfigurationKey(auditKey, configurationDebtToAssetsLowerKeyConstant):      defaults.Audit.DebtToAssetsLowerBound.String(),
		joinConfigurationKey(auditKey, configurationDebtToAssetsUpperKeyConstant):      defaults.Audit.DebtToAssetsUpperBound.String(),
		joinConfigurationKey(auditKey, configurationCashFlowLowerMultipleKeyConstant):  defaults.Audit.OperatingCashFlowLowerMultiple.String(),
		joinConfigurationKey(auditKey, configurationCashFlowUpperMultipleKeyConstant):  defaults.Audit.OperatingCashFlowUpperMultiple.String(),
		joinConfigurationKey(auditKey, configurationFormatKeyConstant):                 defaults.Audit.Format,
		joinConfigurationKey(auditKey, configurationFailOnErrorKeyConstant):            defaults.Audit.FailOnError,
		joinConfigurationKey(auditKey, configurationConcurrencyKeyConstant):            defaults.Audit.Concurrency,
		joinConfigurationKey(benfordKey, configurationCloseUpperBoundKeyConstant):      defaults.Benford.CloseConformityUpperBound,
		joinConfigurationKey(benfordKey, configurationAcceptableUpperBoundKeyConstant): defaults.Benford.AcceptableConformityUpperBound,
		joinConfigurationKey(benfordKey, configurationMarginalUpperBoundKeyConstant):   defaults.Benford.MarginalConformityUpperBound,
		joinConfigurationKey(benfordKey, configurationMinimumSampleSizeKeyConstant):    defaults.Benford.MinimumSampleSize,
		joinConfigurationKey(benfordKey, configurationFormatKeyConstant):               defaults.Benford.Format,
		joinConfigurationKey(benfordKey, configurationConcurrencyKeyConstant):          defaults.Benford.Concurrency,
		joinConfigurationKey(benchmarkKey, configurationFormatKeyConstant):             defaults.Benchmark.Format,
	}
}

// Thresholds converts the configuration into auditor materiality settings.
func (configuration AuditConfiguration) Thresholds() auditor.Thresholds {
	return auditor.Thresholds{
		Tolerance:                      configuration.Tolerance,
		NegativeEquityWarningThreshold: configuration.NegativeEquityWarningThreshold,
		GrossMarginLowerBound:          configuration.GrossMarginLowerBound,
		GrossMarginUpperBound:          configuration.GrossMarginUpperBound,
		DebtToAssetsLowerBound:         configuration.DebtToAssetsLowerBound,
		DebtToAssetsUpperBound:         configuration.DebtToAssetsUpperBound,
		OperatingCashFlowLowerMultiple: configuration.OperatingCashFlowLowerMultiple,
		OperatingCashFlowUpperMultiple: configuration.OperatingCashFlowUpperMultiple,
	}
}

// Thresholds converts the configuration into conformity classification settings.
func (configuration BenfordConfiguration) Thresholds() benford.Thresholds {
	return benford.Thresholds{
		CloseConformityUpperBound:      configuration.CloseConformityUpperBound,
		AcceptableConformityUpperBound: configuration.AcceptableConformityUpperBound,
		MarginalConformityUpperBound:   configuration.MarginalConformityUpperBound,
		MinimumRecommendedSampleSize:   configuration.MinimumSampleSize,
	}
}

// sanitize normalizes audit configuration values.
func (configuration AuditConfiguration) sanitize() AuditConfiguration {
	sanitized := configuration
	sanitized.Format = sanitizeFormat(configuration.Format)
	sanitized.Concurrency = sanitizeConcurrency(configuration.Concurrency)
	return sanitized
}

// sanitize normalizes benford configuration values; unset bounds fall back to
// the published defaults.
func (configuration BenfordConfiguration) sanitize() BenfordConfiguration {
	defaults := DefaultToolsConfiguration().Benford
	sanitized := configuration
	if sanitized.CloseConformityUpperBound <= 0 {
		sanitized.CloseConformityUpperBound = defaults.CloseConformityUpperBound
	}
	if sanitized.AcceptableConformityUpperBound <= 0 {
		sanitized.AcceptableConformityUpperBound = defaults.AcceptableConformityUpperBound
	}
	if sanitized.MarginalConformityUpperBound <= 0 {
		sanitized.MarginalConformityUpperBound = defaults.MarginalConformityUpperBound
	}
	if sanitized.MinimumSampleSize < 0 {
		sanitized.MinimumSampleSize = 0
	}
	sanitized.Format = sanitizeFormat(configuration.Format)
	sanitized.Concurrency = sanitizeConcurrency(configuration.Concurrency)
	return sanitized
}

// sanitize normalizes benchmark configuration values.
func (configuration BenchmarkConfiguration) sanitize() BenchmarkConfiguration {
	sanitized := configuration
	sanitized.Ratios = make(map[string]decimal.Decimal, len(configuration.Ratios))
	for ratioName, benchmarkValue := range configuration.Ratios {
		trimmedName := strings.ToLower(strings.TrimSpace(ratioName))
		if len(trimmedName) == 0 {
			continue
		}
		sanitized.Ratios[trimmedName] = benchmarkValue
	}
	sanitized.Format = sanitizeFormat(configuration.Format)
	return sanitized
}

func sanitizeFormat(rawFormat string) string {
	trimmedFormat := strings.ToLower(strings.TrimSpace(rawFormat))
	if len(trimmedFormat) == 0 {
		return string(ui.OutputFormatConsole)
	}
	return trimmedFormat
}

func sanitizeConcurrency(concurrency int) int {
	if concurrency < 1 {
		return defaultConcurrencyConstant
	}
	return concurrency
}

func joinConfigurationKey(parentKey string, childKey string) string {
	if len(parentKey) == 0 {
		return childKey
	}
	return parentKey + configurationKeySeparatorConstant + childKey
}
