package models

// ConditionSpec is a declarative gate checked before order placement.
// Nil thresholds mean the corresponding sub-check is not requested.
type ConditionSpec struct {
	ScoreAbove     *float64 `json:"score_above,omitempty"`
	ScoreBelow     *float64 `json:"score_below,omitempty"`
	RSIAbove       *float64 `json:"rsi_above,omitempty"`
	RSIBelow       *float64 `json:"rsi_below,omitempty"`
	PauseOnBearish bool     `json:"pause_on_bearish,omitempty"`
}

// HasSentiment reports whether any sentiment sub-check is requested.
func (s ConditionSpec) HasSentiment() bool {
	return s.ScoreAbove != nil || s.ScoreBelow != nil || s.PauseOnBearish
}

// HasRSI reports whether any RSI sub-check is requested.
func (s ConditionSpec) HasRSI() bool {
	return s.RSIAbove != nil || s.RSIBelow != nil
}

// Empty reports whether the spec requests no sub-checks at all.
func (s ConditionSpec) Empty() bool {
	return !s.HasSentiment() && !s.HasRSI()
}

// CheckResult is the outcome of one gate sub-check. Internal errors are
// recorded in Error but leave Met true (fail-open).
type CheckResult struct {
	Value       *float64 `json:"value"`
	Label       string   `json:"label,omitempty"`
	Description string   `json:"description,omitempty"`
	Error       string   `json:"error,omitempty"`
	Met         bool     `json:"met"`
}

// Evaluation combines all requested sub-checks for one symbol.
type Evaluation struct {
	Details map[string]CheckResult `json:"details"`
	Errors  []string               `json:"errors"`
	Met     bool                   `json:"met"`
}
