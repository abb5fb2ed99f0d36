package auditor

import (
	"github.com/temirov/fsaudit/internal/statements"
)

// Auditor evaluates a rule battery against statement models.
type Auditor struct {
	thresholds Thresholds
	rules      []Rule
}

// New constructs an Auditor. When no rules are supplied the default battery is used.
func New(thresholds Thresholds, rules ...Rule) *Auditor {
	selectedRules := rules
	if len(selectedRules) == 0 {
		selectedRules = DefaultRules()
	}
	copiedRules := make([]Rule, len(selectedRules))
	copy(copiedRules, selectedRules)
	return &Auditor{thresholds: thresholds.sanitize(), rules: copiedRules}
}

// Default constructs an Auditor with default thresholds and rules.
func Default() *Auditor {
	return New(DefaultThresholds())
}

// Thresholds returns the sanitized thresholds the auditor applies.
func (auditor *Auditor) Thresholds() Thresholds {
	return auditor.thresholds
}

// Audit runs every rule in order and collects the resulting findings.
// A rule whose required inputs are absent is skipped and each absent field is
// reported once as a MISSING_FIELD error.
func (auditor *Auditor) Audit(model statements.Model) Report {
	inputs := &Inputs{model: model, thresholds: auditor.thresholds}
	reportedMissing := make(map[statements.Field]struct{})
	var findings []Finding
	rulesEvaluated := 0

	for _, rule := range auditor.rules {
		if rule.Check == nil {
			continue
		}
		rulesEvaluated++
		inputs.missing = inputs.missing[:0]

		violation, violated := rule.Check(inputs)
		if inputs.hasMissing() {
			for _, field := range inputs.missing {
				if _, alreadyReported := reportedMissing[field]; alreadyReported {
					continue
				}
				reportedMissing[field] = struct{}{}
				findings = append(findings, missingFieldFinding(field, rule.Category))
			}
			continue
		}
		if !violated {
			continue
		}
		findings = append(findings, Finding{
			Severity:    rule.Severity,
			Code:        rule.Code,
			Category:    rule.Category,
			Message:     violation.Message,
			Discrepancy: violation.Discrepancy,
		})
	}

	return newReport(model.Subject(), rulesEvaluated, findings)
}
