package budget_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/moneymuse/internal/budget"
	"github.com/MrJamesThe3rd/moneymuse/internal/transaction"
)

func newMocks(t *testing.T) (*budget.MockRepository, *budget.MockTransactionSource, *budget.Service) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := budget.NewMockRepository(ctrl)
	txs := budget.NewMockTransactionSource(ctrl)

	return repo, txs, budget.NewService(repo, txs)
}

func TestService_Create(t *testing.T) {
	owner := uuid.New()
	categoryID := uuid.New()

	type testCase struct {
		name      string
		params    budget.CreateParams
		setupMock func(m *budget.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: budget.CreateParams{
				CategoryID: categoryID,
				Amount:     decimal.NewFromInt(500),
				Month:      time.March,
				Year:       2025,
			},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().
					CreateBudget(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *budget.Budget) error {
						b.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "MissingCategory",
			params: budget.CreateParams{
				Amount: decimal.NewFromInt(500),
				Month:  time.March,
				Year:   2025,
			},
			wantErr: budget.ErrInvalidParams,
		},
		{
			name: "NegativeAmount",
			params: budget.CreateParams{
				CategoryID: categoryID,
				Amount:     decimal.NewFromInt(-10),
				Month:      time.March,
				Year:       2025,
			},
			wantErr: budget.ErrInvalidParams,
		},
		{
			name: "MonthOutOfRange",
			params: budget.CreateParams{
				CategoryID: categoryID,
				Amount:     decimal.NewFromInt(500),
				Month:      13,
				Year:       2025,
			},
			wantErr: budget.ErrInvalidParams,
		},
		{
			name: "DuplicatePeriod",
			params: budget.CreateParams{
				CategoryID: categoryID,
				Amount:     decimal.NewFromInt(500),
				Month:      time.March,
				Year:       2025,
			},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().
					CreateBudget(gomock.Any(), gomock.Any()).
					Return(budget.ErrDuplicate)
			},
			wantErr: budget.ErrDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, svc := newMocks(t)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := svc.Create(context.Background(), owner, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, owner, got.UserID)
		})
	}
}

func TestService_Progress(t *testing.T) {
	owner := uuid.New()
	budgetID := uuid.New()
	categoryID := uuid.New()

	monthBudget := func(amount string) *budget.Budget {
		return &budget.Budget{
			ID:         budgetID,
			UserID:     owner,
			CategoryID: categoryID,
			Amount:     decimal.RequireFromString(amount),
			Month:      time.March,
			Year:       2025,
		}
	}

	periodTxs := func(amounts ...string) []*transaction.Transaction {
		txs := make([]*transaction.Transaction, len(amounts))
		for i, a := range amounts {
			txs[i] = &transaction.Transaction{
				Type:       transaction.TypeExpense,
				Amount:     decimal.RequireFromString(a),
				CategoryID: categoryID,
			}
		}

		return txs
	}

	t.Run("FullyUsed", func(t *testing.T) {
		repo, txs, svc := newMocks(t)

		repo.EXPECT().GetBudget(gomock.Any(), owner, budgetID).Return(monthBudget("100"), nil)
		txs.EXPECT().
			ForPeriod(gomock.Any(), owner, []uuid.UUID{categoryID}, time.March, 2025).
			Return(periodTxs("50", "30", "20"), nil)

		got, err := svc.Progress(context.Background(), owner, budgetID)

		require.NoError(t, err)
		assert.True(t, got.Spent.Equal(decimal.NewFromInt(100)), "spent = %s", got.Spent)
		assert.True(t, got.Remaining.IsZero(), "remaining = %s", got.Remaining)
		assert.InDelta(t, 100.0, got.Percent, 1e-9)
	})

	t.Run("IncomeCountsTowardSpent", func(t *testing.T) {
		repo, txs, svc := newMocks(t)

		repo.EXPECT().GetBudget(gomock.Any(), owner, budgetID).Return(monthBudget("200"), nil)

		period := periodTxs("80")
		period = append(period, &transaction.Transaction{
			Type:       transaction.TypeIncome,
			Amount:     decimal.NewFromInt(20),
			CategoryID: categoryID,
		})
		txs.EXPECT().
			ForPeriod(gomock.Any(), owner, []uuid.UUID{categoryID}, time.March, 2025).
			Return(period, nil)

		got, err := svc.Progress(context.Background(), owner, budgetID)

		require.NoError(t, err)
		assert.True(t, got.Spent.Equal(decimal.NewFromInt(100)), "spent = %s", got.Spent)
		assert.InDelta(t, 50.0, got.Percent, 1e-9)
	})

	t.Run("ZeroBudgetedYieldsZeroPercent", func(t *testing.T) {
		repo, txs, svc := newMocks(t)

		repo.EXPECT().GetBudget(gomock.Any(), owner, budgetID).Return(monthBudget("0"), nil)
		txs.EXPECT().
			ForPeriod(gomock.Any(), owner, []uuid.UUID{categoryID}, time.March, 2025).
			Return(periodTxs("40"), nil)

		got, err := svc.Progress(context.Background(), owner, budgetID)

		require.NoError(t, err)
		assert.Zero(t, got.Percent)
		assert.True(t, got.Remaining.Equal(decimal.NewFromInt(-40)), "remaining = %s", got.Remaining)
	})

	t.Run("OverspendGoesNegative", func(t *testing.T) {
		repo, txs, svc := newMocks(t)

		repo.EXPECT().GetBudget(gomock.Any(), owner, budgetID).Return(monthBudget("100"), nil)
		txs.EXPECT().
			ForPeriod(gomock.Any(), owner, []uuid.UUID{categoryID}, time.March, 2025).
			Return(periodTxs("150"), nil)

		got, err := svc.Progress(context.Background(), owner, budgetID)

		require.NoError(t, err)
		assert.True(t, got.Remaining.Equal(decimal.NewFromInt(-50)), "remaining = %s", got.Remaining)
		assert.InDelta(t, 150.0, got.Percent, 1e-9)
	})

	t.Run("NoTransactions", func(t *testing.T) {
		repo, txs, svc := newMocks(t)

		repo.EXPECT().GetBudget(gomock.Any(), owner, budgetID).Return(monthBudget("100"), nil)
		txs.EXPECT().
			ForPeriod(gomock.Any(), owner, []uuid.UUID{categoryID}, time.March, 2025).
			Return(nil, nil)

		got, err := svc.Progress(context.Background(), owner, budgetID)

		require.NoError(t, err)
		assert.True(t, got.Spent.IsZero())
		assert.True(t, got.Remaining.Equal(decimal.NewFromInt(100)))
		assert.Zero(t, got.Percent)
	})

	t.Run("RepeatedCallsAgree", func(t *testing.T) {
		repo, txs, svc := newMocks(t)

		repo.EXPECT().GetBudget(gomock.Any(), owner, budgetID).Return(monthBudget("100"), nil).Times(2)
		txs.EXPECT().
			ForPeriod(gomock.Any(), owner, []uuid.UUID{categoryID}, time.March, 2025).
			Return(periodTxs("30", "45"), nil).
			Times(2)

		first, err := svc.Progress(context.Background(), owner, budgetID)
		require.NoError(t, err)

		second, err := svc.Progress(context.Background(), owner, budgetID)
		require.NoError(t, err)

		assert.True(t, first.Spent.Equal(second.Spent))
		assert.True(t, first.Remaining.Equal(second.Remaining))
		assert.Equal(t, first.Percent, second.Percent)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, _, svc := newMocks(t)

		repo.EXPECT().GetBudget(gomock.Any(), owner, budgetID).Return(nil, budget.ErrNotFound)

		_, err := svc.Progress(context.Background(), owner, budgetID)

		assert.ErrorIs(t, err, budget.ErrNotFound)
	})

	t.Run("TransactionSourceError", func(t *testing.T) {
		repo, txs, svc := newMocks(t)

		repo.EXPECT().GetBudget(gomock.Any(), owner, budgetID).Return(monthBudget("100"), nil)
		txs.EXPECT().
			ForPeriod(gomock.Any(), owner, []uuid.UUID{categoryID}, time.March, 2025).
			Return(nil, errors.New("db error"))

		_, err := svc.Progress(context.Background(), owner, budgetID)

		assert.Error(t, err)
	})
}

func TestService_Overview(t *testing.T) {
	owner := uuid.New()

	t.Run("TotalsAcrossBudgets", func(t *testing.T) {
		repo, txs, svc := newMocks(t)

		catA := uuid.New()
		catB := uuid.New()

		repo.EXPECT().
			ListBudgetsForPeriod(gomock.Any(), owner, time.March, 2025).
			Return([]*budget.Budget{
				{CategoryID: catA, Amount: decimal.NewFromInt(300)},
				{CategoryID: catB, Amount: decimal.NewFromInt(200)},
			}, nil)
		txs.EXPECT().
			ForPeriod(gomock.Any(), owner, []uuid.UUID{catA, catB}, time.March, 2025).
			Return([]*transaction.Transaction{
				{Type: transaction.TypeExpense, Amount: decimal.NewFromInt(120), CategoryID: catA},
				{Type: transaction.TypeExpense, Amount: decimal.NewFromInt(80), CategoryID: catB},
			}, nil)

		got, err := svc.Overview(context.Background(), owner, time.March, 2025)

		require.NoError(t, err)
		assert.True(t, got.TotalBudgeted.Equal(decimal.NewFromInt(500)))
		assert.True(t, got.TotalSpent.Equal(decimal.NewFromInt(200)))
		assert.True(t, got.Remaining.Equal(decimal.NewFromInt(300)))
	})

	t.Run("NoBudgetsYieldsZeros", func(t *testing.T) {
		repo, _, svc := newMocks(t)

		repo.EXPECT().
			ListBudgetsForPeriod(gomock.Any(), owner, time.March, 2025).
			Return(nil, nil)

		got, err := svc.Overview(context.Background(), owner, time.March, 2025)

		require.NoError(t, err)
		assert.True(t, got.TotalBudgeted.IsZero())
		assert.True(t, got.TotalSpent.IsZero())
		assert.True(t, got.Remaining.IsZero())
	})

	t.Run("InvalidPeriod", func(t *testing.T) {
		_, _, svc := newMocks(t)

		_, err := svc.Overview(context.Background(), owner, 0, 2025)

		assert.ErrorIs(t, err, budget.ErrInvalidParams)
	})
}

func TestService_Update(t *testing.T) {
	owner := uuid.New()
	budgetID := uuid.New()

	existing := func() *budget.Budget {
		return &budget.Budget{
			ID:         budgetID,
			UserID:     owner,
			CategoryID: uuid.New(),
			Amount:     decimal.NewFromInt(100),
			Month:      time.March,
			Year:       2025,
		}
	}

	t.Run("PartialUpdate", func(t *testing.T) {
		repo, _, svc := newMocks(t)

		repo.EXPECT().GetBudget(gomock.Any(), owner, budgetID).Return(existing(), nil)
		repo.EXPECT().UpdateBudget(gomock.Any(), gomock.Any()).Return(nil)

		amount := decimal.NewFromInt(250)
		got, err := svc.Update(context.Background(), owner, budgetID, budget.UpdateParams{Amount: &amount})

		require.NoError(t, err)
		assert.True(t, got.Amount.Equal(amount))
		assert.Equal(t, time.March, got.Month)
	})

	t.Run("MovingToTakenPeriodConflicts", func(t *testing.T) {
		repo, _, svc := newMocks(t)

		repo.EXPECT().GetBudget(gomock.Any(), owner, budgetID).Return(existing(), nil)
		repo.EXPECT().UpdateBudget(gomock.Any(), gomock.Any()).Return(budget.ErrDuplicate)

		month := time.April
		_, err := svc.Update(context.Background(), owner, budgetID, budget.UpdateParams{Month: &month})

		assert.ErrorIs(t, err, budget.ErrDuplicate)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, _, svc := newMocks(t)

		repo.EXPECT().GetBudget(gomock.Any(), owner, budgetID).Return(nil, budget.ErrNotFound)

		_, err := svc.Update(context.Background(), owner, budgetID, budget.UpdateParams{})

		assert.ErrorIs(t, err, budget.ErrNotFound)
	})
}
