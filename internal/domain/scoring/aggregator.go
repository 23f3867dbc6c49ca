// Package scoring folds raw per-item score inputs into stage totals.
//
// The self stage is the reference for every later pass: an item the reviewee
// marked not-applicable is excluded from scoring for the life of the case,
// no matter what a later form submitted for it. This package is the final
// authority on that invariant; the entry forms only make it convenient.
package scoring

import "clinic_review/internal/domain/entities"

// Fold computes (total, max) for one stage against a reference stage.
//
// Per catalog item:
//   - reference says not-applicable: the item contributes to neither total
//     nor max.
//   - otherwise max grows by the per-item ceiling and total by the stage's
//     score for the item, clamped to [0, 10], with a missing or invalid
//     entry counted as zero.
//
// Fold is pure: re-running it on the same inputs yields the same pair.
func Fold(stageScores, referenceScores map[string]entities.Score, catalog []entities.Item) (total, max int) {
	for _, item := range catalog {
		ref, ok := referenceScores[item.Name]
		if ok && ref.NotApplicable() {
			continue
		}
		max += entities.ScoreMax

		s, ok := stageScores[item.Name]
		if !ok || s.NotApplicable() {
			continue
		}
		total += int(s.Clamped())
	}
	return total, max
}

// ForceNotApplicable returns the effective stage score map with every item
// the reference marks not-applicable forced to not-applicable, regardless of
// what the submitted map contained. Items absent from the submitted map stay
// absent unless the reference forces them.
func ForceNotApplicable(stageScores, referenceScores map[string]entities.Score) map[string]entities.Score {
	out := make(map[string]entities.Score, len(stageScores))
	for name, s := range stageScores {
		out[name] = s.Clamped()
	}
	for name, ref := range referenceScores {
		if ref.NotApplicable() {
			out[name] = entities.ScoreNotApplicable
		}
	}
	return out
}
