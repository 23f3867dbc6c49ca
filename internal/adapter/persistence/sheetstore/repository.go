package sheetstore

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"clinic_review/internal/domain/entities"
	"clinic_review/internal/usecase/interfaces"
)

// CaseRepository maps Case entities onto the flat table through Store.
//
// Collision policy: the natural key is not unique-enforced by the store, so
// Create refuses a key that already resolves and every lookup reports
// ambiguity instead of picking a row.

type CaseRepository struct {
	store   *Store
	catalog []entities.Item
	schema  Schema
}

var _ interfaces.ICaseRepository = (*CaseRepository)(nil)

func NewCaseRepository(store *Store, catalog []entities.Item) *CaseRepository {
	return &CaseRepository{
		store:   store,
		catalog: catalog,
		schema:  NewSchema(catalog),
	}
}

// Migrate provisions the deterministic column schema derived from the item
// catalog. Run once at startup; idempotent, so restarts are free.
func (r *CaseRepository) Migrate(ctx context.Context) error {
	return r.store.EnsureColumns(ctx, r.schema.Columns())
}

func (r *CaseRepository) List(ctx context.Context) ([]entities.Case, error) {
	records, err := r.store.Records(ctx)
	if err != nil {
		return nil, err
	}

	cases := make([]entities.Case, 0, len(records))
	for i, rec := range records {
		c := r.recordToCase(rec)
		c.Row = entities.RowHandle(i + 2)
		cases = append(cases, c)
	}
	return cases, nil
}

func (r *CaseRepository) GetByKey(ctx context.Context, name, date string) (entities.Case, error) {
	handle, err := r.store.Locate(ctx, name, date)
	if err != nil {
		return entities.Case{}, err
	}

	records, err := r.store.Records(ctx)
	if err != nil {
		return entities.Case{}, err
	}
	idx := int(handle) - 2
	if idx < 0 || idx >= len(records) {
		return entities.Case{}, entities.ErrCaseNotFound
	}

	c := r.recordToCase(records[idx])
	c.Row = handle
	return c, nil
}

func (r *CaseRepository) Create(ctx context.Context, c entities.Case) (entities.Case, error) {
	_, err := r.store.Locate(ctx, c.Name, c.Date)
	switch {
	case err == nil:
		return entities.Case{}, entities.ErrCaseAlreadyExists
	case errors.Is(err, entities.ErrAmbiguousCaseKey):
		return entities.Case{}, err
	case errors.Is(err, entities.ErrCaseNotFound):
		// Key is absent, safe to append.
	default:
		return entities.Case{}, err
	}

	if err := r.store.AppendRow(ctx, r.caseToRecord(c)); err != nil {
		return entities.Case{}, err
	}
	return c, nil
}

func (r *CaseRepository) UpdateStage(ctx context.Context, handle entities.RowHandle, upd interfaces.StageUpdate) error {
	fields := map[string]string{
		colStatus:                         string(upd.Status),
		totalColumn(upd.Stage):            strconv.Itoa(upd.Record.Total),
		maxColumn(upd.Stage):              strconv.Itoa(upd.Record.Max),
		commentColumn(upd.Stage):          upd.Record.Comment,
		reviewerColumn(upd.Stage):         upd.Record.Reviewer,
		stageSubmittedAtColumn(upd.Stage): formatCellTime(upd.Record.SubmittedAt),
	}
	for _, item := range r.catalog {
		if s, ok := upd.Record.Scores[item.Name]; ok {
			fields[itemColumn(item.Name, upd.Stage)] = entities.FormatScore(s)
		}
	}
	if upd.Stage == entities.StageFinal {
		fields[colFinalAction] = string(upd.Action)
		fields[colGrade] = upd.Grade

		// The grade column postdates the original table; provision it before
		// addressing it.
		if err := r.store.EnsureColumns(ctx, []string{colGrade}); err != nil {
			return err
		}
	}

	return r.store.UpdateCells(ctx, handle, fields)
}

func (r *CaseRepository) caseToRecord(c entities.Case) map[string]string {
	rec := map[string]string{
		colStatus:      string(c.Status),
		colName:        normalizeName(c.Name),
		colRank:        c.Rank,
		colRole:        string(c.SubmitterRole),
		colRouting:     c.Routing,
		colApprover:    c.Approver,
		colDate:        normalizeDate(c.Date),
		colSubmittedAt: formatCellTime(c.SubmittedAt),
	}

	for stage, sr := range c.Stages {
		// Exempt stages keep empty totals; an empty cell reads back as
		// exempt, a zero would read back as a real score.
		if c.StageExempt(stage) {
			continue
		}
		rec[totalColumn(stage)] = strconv.Itoa(sr.Total)
		rec[maxColumn(stage)] = strconv.Itoa(sr.Max)
		rec[commentColumn(stage)] = sr.Comment
		for _, item := range r.catalog {
			if s, ok := sr.Scores[item.Name]; ok {
				rec[itemColumn(item.Name, stage)] = entities.FormatScore(s)
			}
		}
	}
	return rec
}

func (r *CaseRepository) recordToCase(rec map[string]string) entities.Case {
	c := entities.Case{
		Name:          normalizeName(rec[colName]),
		Rank:          rec[colRank],
		Date:          normalizeDate(rec[colDate]),
		Status:        entities.CaseStatus(rec[colStatus]),
		Routing:       rec[colRouting],
		SubmitterRole: entities.Role(strings.TrimSpace(rec[colRole])),
		Approver:      rec[colApprover],
		FinalAction:   entities.FinalAction(rec[colFinalAction]),
		Grade:         rec[colGrade],
		SubmittedAt:   parseCellTime(rec[colSubmittedAt]),
		Stages:        map[entities.Stage]entities.StageRecord{},
	}

	for _, stage := range entities.Stages() {
		sr := entities.StageRecord{
			Comment: rec[commentColumn(stage)],
			Scores:  map[string]entities.Score{},
		}
		sr.Total, _ = strconv.Atoi(rec[totalColumn(stage)])
		sr.Max, _ = strconv.Atoi(rec[maxColumn(stage)])
		if stage != entities.StageSelf {
			sr.Reviewer = rec[reviewerColumn(stage)]
			sr.SubmittedAt = parseCellTime(rec[stageSubmittedAtColumn(stage)])
		} else {
			sr.SubmittedAt = c.SubmittedAt
		}
		for _, item := range r.catalog {
			if cell, ok := rec[itemColumn(item.Name, stage)]; ok && cell != "" {
				sr.Scores[item.Name] = entities.ParseScore(cell)
			}
		}
		// A stage exists only when its cells hold data. Materializing an
		// empty stage would read back as a submitted zero-score pass.
		if rec[totalColumn(stage)] == "" && rec[maxColumn(stage)] == "" &&
			sr.Reviewer == "" && len(sr.Scores) == 0 {
			continue
		}
		c.Stages[stage] = sr
	}
	return c
}
