package benford

// Conformity labels how closely observed digits follow the expected distribution.
type Conformity string

// Conformity categories in ascending order of deviation.
const (
	ConformityClose      Conformity = "close conformity"
	ConformityAcceptable Conformity = "acceptable conformity"
	ConformityMarginal   Conformity = "marginal conformity"
	ConformityNone       Conformity = "nonconformity"
)

const (
	conformityCloseDescriptionConstant      = "data likely follows Benford's Law"
	conformityAcceptableDescriptionConstant = "data reasonably follows Benford's Law"
	conformityMarginalDescriptionConstant   = "marginally acceptable, investigate further"
	conformityNoneDescriptionConstant       = "potential data quality issues or fraud"
)

// Description returns a short interpretation of the category.
func (conformity Conformity) Description() string {
	switch conformity {
	case ConformityClose:
		return conformityCloseDescriptionConstant
	case ConformityAcceptable:
		return conformityAcceptableDescriptionConstant
	case ConformityMarginal:
		return conformityMarginalDescriptionConstant
	default:
		return conformityNoneDescriptionConstant
	}
}

// ClassifyConformity maps a mean absolute deviation onto a category. A value
// equal to a boundary belongs to the higher-deviation category.
func ClassifyConformity(meanAbsoluteDeviation float64, thresholds Thresholds) Conformity {
	switch {
	case meanAbsoluteDeviation < thresholds.CloseConformityUpperBound:
		return ConformityClose
	case meanAbsoluteDeviation < thresholds.AcceptableConformityUpperBound:
		return ConformityAcceptable
	case meanAbsoluteDeviation < thresholds.MarginalConformityUpperBound:
		return ConformityMarginal
	default:
		return ConformityNone
	}
}
