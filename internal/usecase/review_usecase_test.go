package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic_review/internal/domain/entities"
	"clinic_review/internal/usecase/interfaces"
	"clinic_review/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func testCatalog() []entities.Item {
	return []entities.Item{
		{Category: entities.CategoryProfessional, Name: "A", Description: "item a"},
		{Category: entities.CategoryProfessional, Name: "B", Description: "item b"},
	}
}

func testEngine(t *testing.T, repo interfaces.ICaseRepository, audit interfaces.IAuditRepository, authz interfaces.IStageAuthorizer) *ReviewUseCase {
	t.Helper()
	uc := NewReviewUseCase(repo, audit, authz, testCatalog())
	uc.now = func() time.Time { return time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC) }
	return uc
}

func pendingInitialCase() entities.Case {
	return entities.Case{
		Name:          "Alice",
		Date:          "2024-01-05",
		Status:        entities.CaseStatusPendingInitial,
		SubmitterRole: entities.RoleStaff,
		Row:           2,
		Stages: map[entities.Stage]entities.StageRecord{
			entities.StageSelf: {
				Scores: map[string]entities.Score{"A": 7, "B": entities.ScoreNotApplicable},
				Total:  7,
				Max:    10,
			},
		},
	}
}

func TestReviewUseCase_SubmitSelf(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		uc := testEngine(t, nil, nil, nil)
		_, err := uc.SubmitSelf(context.Background(), SubmitSelfCommand{Name: "   ", Role: entities.RoleStaff})
		if !errors.Is(err, ErrMissingName) {
			t.Fatalf("expected ErrMissingName, got %v", err)
		}
	})

	t.Run("invalid role", func(t *testing.T) {
		uc := testEngine(t, nil, nil, nil)
		_, err := uc.SubmitSelf(context.Background(), SubmitSelfCommand{Name: "Alice", Role: "intern"})
		if !errors.Is(err, ErrInvalidRole) {
			t.Fatalf("expected ErrInvalidRole, got %v", err)
		}
	})

	t.Run("duplicate key rejected by repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mocks.NewMockICaseRepository(ctrl)
		uc := testEngine(t, repo, nil, nil)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Case{}, entities.ErrCaseAlreadyExists)

		_, err := uc.SubmitSelf(context.Background(), SubmitSelfCommand{Name: "Alice", Date: "2024-01-05", Role: entities.RoleStaff})
		if !errors.Is(err, entities.ErrCaseAlreadyExists) {
			t.Fatalf("expected ErrCaseAlreadyExists, got %v", err)
		}
	})

	t.Run("self is its own reference", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mocks.NewMockICaseRepository(ctrl)
		audit := mocks.NewMockIAuditRepository(ctrl)
		uc := testEngine(t, repo, audit, nil)

		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Case{})).DoAndReturn(
			func(_ context.Context, c entities.Case) (entities.Case, error) {
				if c.Status != entities.CaseStatusPendingInitial {
					t.Fatalf("unexpected status %s", c.Status)
				}
				self := c.Stages[entities.StageSelf]
				if self.Total != 7 || self.Max != 10 {
					t.Fatalf("expected (7, 10), got (%d, %d)", self.Total, self.Max)
				}
				if !self.Scores["B"].NotApplicable() {
					t.Fatalf("expected B marked N/A")
				}
				return c, nil
			},
		)
		audit.EXPECT().Record(gomock.Any(), gomock.AssignableToTypeOf(entities.SubmissionAudit{})).DoAndReturn(
			func(_ context.Context, a entities.SubmissionAudit) (entities.SubmissionAudit, error) {
				if a.Stage != entities.StageSelf || a.Total != 7 || a.Max != 10 {
					t.Fatalf("unexpected audit entry %+v", a)
				}
				return a, nil
			},
		)

		created, err := uc.SubmitSelf(context.Background(), SubmitSelfCommand{
			Name: " Alice ",
			Date: "2024-01-05",
			Role: entities.RoleStaff,
			Scores: map[string]entities.Score{
				"A": 7,
				"B": entities.ScoreNotApplicable,
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.Name != "Alice" {
			t.Fatalf("expected trimmed name, got %q", created.Name)
		}
	})

	t.Run("initial status follows submitter role", func(t *testing.T) {
		cases := map[entities.Role]entities.CaseStatus{
			entities.RoleStaff:          entities.CaseStatusPendingInitial,
			entities.RoleInitialManager: entities.CaseStatusPendingSecondary,
			entities.RoleSeniorManager:  entities.CaseStatusPendingFinal,
		}
		for role, want := range cases {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockICaseRepository(ctrl)
			uc := testEngine(t, repo, nil, nil)

			repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, c entities.Case) (entities.Case, error) {
					if c.Status != want {
						t.Fatalf("role %s: expected %s, got %s", role, want, c.Status)
					}
					return c, nil
				},
			)
			if _, err := uc.SubmitSelf(context.Background(), SubmitSelfCommand{Name: "Alice", Date: "2024-01-05", Role: role}); err != nil {
				t.Fatalf("role %s: unexpected error %v", role, err)
			}
			ctrl.Finish()
		}
	})
}

func TestReviewUseCase_SubmitReview(t *testing.T) {
	t.Run("self and final are not review stages", func(t *testing.T) {
		uc := testEngine(t, nil, nil, nil)
		for _, stage := range []entities.Stage{entities.StageSelf, entities.StageFinal} {
			_, err := uc.SubmitReview(context.Background(), stage, ReviewCommand{Name: "Alice", Date: "2024-01-05"})
			if !errors.Is(err, ErrInvalidStage) {
				t.Fatalf("stage %s: expected ErrInvalidStage, got %v", stage, err)
			}
		}
	})

	t.Run("unauthorized actor never reaches the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		authz := mocks.NewMockIStageAuthorizer(ctrl)
		uc := testEngine(t, nil, nil, authz)

		authz.EXPECT().Authorize("bad-token", entities.StageInitial).Return("", errors.New("signature invalid"))

		_, err := uc.SubmitReview(context.Background(), entities.StageInitial, ReviewCommand{Token: "bad-token", Name: "Alice", Date: "2024-01-05"})
		if !errors.Is(err, ErrUnauthorizedStage) {
			t.Fatalf("expected ErrUnauthorizedStage, got %v", err)
		}
	})

	t.Run("case not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mocks.NewMockICaseRepository(ctrl)
		authz := mocks.NewMockIStageAuthorizer(ctrl)
		uc := testEngine(t, repo, nil, authz)

		authz.EXPECT().Authorize(gomock.Any(), entities.StageInitial).Return("Ming", nil)
		repo.EXPECT().GetByKey(gomock.Any(), "Alice", "2024-01-05").Return(entities.Case{}, entities.ErrCaseNotFound)

		_, err := uc.SubmitReview(context.Background(), entities.StageInitial, ReviewCommand{Name: "Alice", Date: "2024-01-05"})
		if !errors.Is(err, entities.ErrCaseNotFound) {
			t.Fatalf("expected ErrCaseNotFound, got %v", err)
		}
	})

	t.Run("wrong state issues zero writes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mocks.NewMockICaseRepository(ctrl)
		authz := mocks.NewMockIStageAuthorizer(ctrl)
		uc := testEngine(t, repo, nil, authz)

		completed := pendingInitialCase()
		completed.Status = entities.CaseStatusCompleted

		authz.EXPECT().Authorize(gomock.Any(), entities.StageInitial).Return("Ming", nil)
		repo.EXPECT().GetByKey(gomock.Any(), "Alice", "2024-01-05").Return(completed, nil)
		// No UpdateStage expectation: any write fails the test.

		_, err := uc.SubmitReview(context.Background(), entities.StageInitial, ReviewCommand{Name: "Alice", Date: "2024-01-05"})
		if !errors.Is(err, ErrInvalidCaseState) {
			t.Fatalf("expected ErrInvalidCaseState, got %v", err)
		}
	})

	t.Run("initial review advances and folds against self", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mocks.NewMockICaseRepository(ctrl)
		authz := mocks.NewMockIStageAuthorizer(ctrl)
		uc := testEngine(t, repo, nil, authz)

		authz.EXPECT().Authorize("token", entities.StageInitial).Return("Ming", nil)
		repo.EXPECT().GetByKey(gomock.Any(), "Alice", "2024-01-05").Return(pendingInitialCase(), nil)
		repo.EXPECT().UpdateStage(gomock.Any(), entities.RowHandle(2), gomock.AssignableToTypeOf(interfaces.StageUpdate{})).DoAndReturn(
			func(_ context.Context, _ entities.RowHandle, upd interfaces.StageUpdate) error {
				if upd.Stage != entities.StageInitial {
					t.Fatalf("unexpected stage %s", upd.Stage)
				}
				if upd.Status != entities.CaseStatusPendingSecondary {
					t.Fatalf("unexpected next status %s", upd.Status)
				}
				if upd.Record.Total != 8 || upd.Record.Max != 10 {
					t.Fatalf("expected (8, 10), got (%d, %d)", upd.Record.Total, upd.Record.Max)
				}
				if !upd.Record.Scores["B"].NotApplicable() {
					t.Fatalf("expected B forced N/A against self reference")
				}
				if upd.Record.Reviewer != "Ming" {
					t.Fatalf("unexpected reviewer %q", upd.Record.Reviewer)
				}
				return nil
			},
		)

		// The form let a score for B through; the reference must win.
		updated, err := uc.SubmitReview(context.Background(), entities.StageInitial, ReviewCommand{
			Token:  "token",
			Name:   "Alice",
			Date:   "2024-01-05",
			Scores: map[string]entities.Score{"A": 8, "B": 5},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Status != entities.CaseStatusPendingSecondary {
			t.Fatalf("unexpected status %s", updated.Status)
		}
	})

	t.Run("audit failure does not fail the submission", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mocks.NewMockICaseRepository(ctrl)
		audit := mocks.NewMockIAuditRepository(ctrl)
		authz := mocks.NewMockIStageAuthorizer(ctrl)
		uc := testEngine(t, repo, audit, authz)

		authz.EXPECT().Authorize(gomock.Any(), entities.StageInitial).Return("Ming", nil)
		repo.EXPECT().GetByKey(gomock.Any(), "Alice", "2024-01-05").Return(pendingInitialCase(), nil)
		repo.EXPECT().UpdateStage(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(entities.SubmissionAudit{}, errors.New("dynamo down"))

		_, err := uc.SubmitReview(context.Background(), entities.StageInitial, ReviewCommand{Name: "Alice", Date: "2024-01-05"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestReviewUseCase_SubmitFinal(t *testing.T) {
	t.Run("invalid action", func(t *testing.T) {
		uc := testEngine(t, nil, nil, nil)
		_, err := uc.SubmitFinal(context.Background(), FinalCommand{
			ReviewCommand: ReviewCommand{Name: "Alice", Date: "2024-01-05"},
			Action:        "promote",
		})
		if !errors.Is(err, ErrInvalidFinalAction) {
			t.Fatalf("expected ErrInvalidFinalAction, got %v", err)
		}
	})

	t.Run("completes the case with action and derived grade", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mocks.NewMockICaseRepository(ctrl)
		authz := mocks.NewMockIStageAuthorizer(ctrl)
		uc := testEngine(t, repo, nil, authz)

		pending := pendingInitialCase()
		pending.Status = entities.CaseStatusPendingFinal

		authz.EXPECT().Authorize("token", entities.StageFinal).Return("Dr. Chen", nil)
		repo.EXPECT().GetByKey(gomock.Any(), "Alice", "2024-01-05").Return(pending, nil)
		repo.EXPECT().UpdateStage(gomock.Any(), entities.RowHandle(2), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ entities.RowHandle, upd interfaces.StageUpdate) error {
				if upd.Status != entities.CaseStatusCompleted {
					t.Fatalf("unexpected status %s", upd.Status)
				}
				if upd.Action != entities.FinalActionPass {
					t.Fatalf("unexpected action %s", upd.Action)
				}
				// 9/10 -> excellent.
				if upd.Grade != "excellent" {
					t.Fatalf("unexpected grade %q", upd.Grade)
				}
				return nil
			},
		)

		updated, err := uc.SubmitFinal(context.Background(), FinalCommand{
			ReviewCommand: ReviewCommand{
				Token:  "token",
				Name:   "Alice",
				Date:   "2024-01-05",
				Scores: map[string]entities.Score{"A": 9},
			},
			Action: entities.FinalActionPass,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Status != entities.CaseStatusCompleted || updated.Grade != "excellent" {
			t.Fatalf("unexpected case %+v", updated)
		}
	})
}

func TestReviewUseCase_GetCase(t *testing.T) {
	t.Run("missing key fields", func(t *testing.T) {
		uc := testEngine(t, nil, nil, nil)
		if _, err := uc.GetCase(context.Background(), " ", "2024-01-05"); !errors.Is(err, ErrMissingName) {
			t.Fatalf("expected ErrMissingName, got %v", err)
		}
		if _, err := uc.GetCase(context.Background(), "Alice", ""); !errors.Is(err, ErrMissingDate) {
			t.Fatalf("expected ErrMissingDate, got %v", err)
		}
	})

	t.Run("ambiguous key surfaces as-is", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mocks.NewMockICaseRepository(ctrl)
		uc := testEngine(t, repo, nil, nil)

		repo.EXPECT().GetByKey(gomock.Any(), "Alice", "2024-01-05").Return(entities.Case{}, entities.ErrAmbiguousCaseKey)

		_, err := uc.GetCase(context.Background(), "Alice", "2024-01-05")
		if !errors.Is(err, entities.ErrAmbiguousCaseKey) {
			t.Fatalf("expected ErrAmbiguousCaseKey, got %v", err)
		}
	})
}

func TestReviewUseCase_ListCases(t *testing.T) {
	all := []entities.Case{
		{Name: "Alice", Date: "2024-01-05", Routing: "Ming", Status: entities.CaseStatusPendingInitial},
		{Name: "Bob", Date: "2024-01-05", Routing: "Wei", Status: entities.CaseStatusPendingInitial},
		{Name: "Carol", Date: "2024-01-06", Routing: "Ming", Status: entities.CaseStatusPendingSecondary},
	}

	t.Run("empty routing returns everything", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mocks.NewMockICaseRepository(ctrl)
		uc := testEngine(t, repo, nil, nil)

		repo.EXPECT().List(gomock.Any()).Return(all, nil)

		cases, err := uc.ListCases(context.Background(), "  ")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(cases) != 3 {
			t.Fatalf("expected 3 cases, got %d", len(cases))
		}
	})

	t.Run("routing narrows to one reviewer's queue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mocks.NewMockICaseRepository(ctrl)
		uc := testEngine(t, repo, nil, nil)

		repo.EXPECT().List(gomock.Any()).Return(all, nil)

		cases, err := uc.ListCases(context.Background(), "Ming")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(cases) != 2 {
			t.Fatalf("expected 2 cases for Ming, got %d", len(cases))
		}
		if cases[0].Name != "Alice" || cases[1].Name != "Carol" {
			t.Fatalf("unexpected queue: %+v", cases)
		}
	})
}
