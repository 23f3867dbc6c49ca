package entities

import "strconv"

// Score is a single per-item, per-stage score cell: an integer 0..10 or the
// not-applicable sentinel. A not-applicable mark at the self stage is final;
// every later stage inherits it and the item drops out of scoring entirely.

type Score int

// ScoreNotApplicable excludes an item from both the stage total and the
// maximum possible.
const ScoreNotApplicable Score = -1

const (
	ScoreMin = 0
	ScoreMax = 10
)

func (s Score) NotApplicable() bool { return s == ScoreNotApplicable }

// Clamped returns the score bounded to [0, 10]. The sentinel passes through
// untouched. Inputs arrive from an externally edited table, so out-of-range
// values are possible regardless of what the entry form allowed.
func (s Score) Clamped() Score {
	if s.NotApplicable() {
		return s
	}
	if s < ScoreMin {
		return ScoreMin
	}
	if s > ScoreMax {
		return ScoreMax
	}
	return s
}

// naCell is how the sentinel is serialized in the backing table.
const naCell = "N/A"

// FormatScore renders a score for a table cell.
func FormatScore(s Score) string {
	if s.NotApplicable() {
		return naCell
	}
	return strconv.Itoa(int(s))
}

// ParseScore reads a table cell back into a score. Blank or unparsable cells
// count as zero: the table is plain text and may contain anything.
func ParseScore(cell string) Score {
	if cell == naCell {
		return ScoreNotApplicable
	}
	n, err := strconv.Atoi(cell)
	if err != nil {
		return 0
	}
	return Score(n).Clamped()
}
