package sheetstore

import (
	"strings"
	"time"

	"clinic_review/internal/domain/entities"
)

// Core column names of the backing table. Row 1 is the header; every other
// row is one case. The column set grows at the right edge over the system's
// lifetime, so positions are always resolved through the header, never
// assumed.
const (
	colStatus      = "status"
	colName        = "name"
	colRank        = "rank"
	colRole        = "role"
	colRouting     = "routing"
	colApprover    = "approver"
	colDate        = "date"
	colSubmittedAt = "submitted_at"
	colFinalAction = "final_action"

	// colGrade was added after the table went live. It is deliberately not
	// part of the startup schema so the final-stage write path provisions it
	// on demand.
	colGrade = "grade"
)

func totalColumn(stage entities.Stage) string    { return string(stage) + "_total" }
func maxColumn(stage entities.Stage) string      { return string(stage) + "_max" }
func commentColumn(stage entities.Stage) string  { return string(stage) + "_comment" }
func reviewerColumn(stage entities.Stage) string { return string(stage) + "_reviewer" }

func stageSubmittedAtColumn(stage entities.Stage) string {
	return string(stage) + "_submitted_at"
}

// itemColumn is the score cell column for one catalog item at one stage.
func itemColumn(itemName string, stage entities.Stage) string {
	return itemName + "-" + string(stage)
}

// Schema derives the full deterministic column set from the item catalog.
// It backs the one-time startup migration; after that, only late additions
// (the grade column) are provisioned per request.
type Schema struct {
	catalog []entities.Item
}

func NewSchema(catalog []entities.Item) Schema {
	return Schema{catalog: catalog}
}

// Columns lists every column the schema requires, core columns first, then
// one column per catalog item per stage in catalog order.
func (s Schema) Columns() []string {
	cols := []string{
		colStatus, colName, colRank, colRole, colRouting, colApprover, colDate,
	}
	for _, stage := range entities.Stages() {
		cols = append(cols, totalColumn(stage), maxColumn(stage), commentColumn(stage))
	}
	for _, stage := range []entities.Stage{entities.StageInitial, entities.StageSecondary, entities.StageFinal} {
		cols = append(cols, reviewerColumn(stage), stageSubmittedAtColumn(stage))
	}
	cols = append(cols, colFinalAction, colSubmittedAt)
	for _, item := range s.catalog {
		for _, stage := range entities.Stages() {
			cols = append(cols, itemColumn(item.Name, stage))
		}
	}
	return cols
}

// cellTimeLayout is how timestamps are serialized in table cells.
const cellTimeLayout = "2006-01-02 15:04:05"

func formatCellTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(cellTimeLayout)
}

func parseCellTime(cell string) time.Time {
	t, _ := time.Parse(cellTimeLayout, cell)
	return t
}

// normalizeName trims the stray whitespace a plain-text store accumulates.
func normalizeName(name string) string {
	return strings.TrimSpace(name)
}

// dateLayouts are the serializations observed in the table. Unpadded layouts
// also accept zero-padded values.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
	"20060102",
}

// canonicalDateLayout is the serialization this service writes.
const canonicalDateLayout = "2006-01-02"

// normalizeDate re-formats any recognized date serialization to the
// canonical YYYY-MM-DD form. Unrecognized input passes through trimmed:
// the store is plain text, and a non-date cell simply never matches a
// well-formed key.
func normalizeDate(date string) string {
	date = strings.TrimSpace(date)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format(canonicalDateLayout)
		}
	}
	return date
}
