// Package models defines data structures used across the application.
// File: models/prediction.go
package models

// ----------------------- tip type & result -----------------------

// TipType marks a prediction as free for everyone or gated behind VIP approval.
type TipType string

const (
	TipFree TipType = "FREE"
	TipVIP  TipType = "VIP"
)

// Valid reports whether t is one of the known tip types.
func (t TipType) Valid() bool {
	switch t {
	case TipFree, TipVIP:
		return true
	}
	return false
}

// Result is the settled outcome of a prediction.
type Result string

const (
	ResultPending Result = "pending"
	ResultWin     Result = "WIN"
	ResultLoss    Result = "LOSS"
)

// Valid reports whether r is one of the known results.
func (r Result) Valid() bool {
	switch r {
	case ResultPending, ResultWin, ResultLoss:
		return true
	}
	return false
}

// ----------------------- prediction model -----------------------

// Prediction is a single betting tip. Odds stay a display string and are
// never parsed arithmetically. Kickoff is an ISO-8601 timestamp string.
type Prediction struct {
	ID        int     `json:"id"`
	MatchName string  `json:"match_name"`
	League    string  `json:"league"`
	Tip       string  `json:"tip"`
	Odds      string  `json:"odds"`
	Kickoff   string  `json:"kickoff"`
	Type      TipType `json:"type"`
	Result    Result  `json:"result"`
}

// PredictionSeed is what the external generation collaborator returns:
// a prediction without id or result, which ingestion assigns.
type PredictionSeed struct {
	MatchName string  `json:"match_name"`
	League    string  `json:"league"`
	Tip       string  `json:"tip"`
	Odds      string  `json:"odds"`
	Kickoff   string  `json:"kickoff"`
	Type      TipType `json:"type"`
}

// ----------------------- prediction patch -----------------------

// PredictionPatch lists exactly the mutable fields of a Prediction.
// Nil pointers leave the corresponding field unchanged; the id never moves.
type PredictionPatch struct {
	MatchName *string  `json:"match_name,omitempty"`
	League    *string  `json:"league,omitempty"`
	Tip       *string  `json:"tip,omitempty"`
	Odds      *string  `json:"odds,omitempty"`
	Kickoff   *string  `json:"kickoff,omitempty"`
	Type      *TipType `json:"type,omitempty"`
	Result    *Result  `json:"result,omitempty"`
}

// Apply merges the patch into p, field by field.
func (pp PredictionPatch) Apply(p *Prediction) {
	if pp.MatchName != nil {
		p.MatchName = *pp.MatchName
	}
	if pp.League != nil {
		p.League = *pp.League
	}
	if pp.Tip != nil {
		p.Tip = *pp.Tip
	}
	if pp.Odds != nil {
		p.Odds = *pp.Odds
	}
	if pp.Kickoff != nil {
		p.Kickoff = *pp.Kickoff
	}
	if pp.Type != nil {
		p.Type = *pp.Type
	}
	if pp.Result != nil {
		p.Result = *pp.Result
	}
}
