package category_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/moneymuse/internal/category"
)

func TestService_Create(t *testing.T) {
	owner := uuid.New()

	type testCase struct {
		name      string
		params    category.CreateParams
		setupMock func(m *category.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: category.CreateParams{
				Name: "Groceries",
				Type: category.TypeExpense,
				Icon: "cart",
			},
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().
					CreateCategory(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *category.Category) error {
						c.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "MissingName",
			params:  category.CreateParams{Type: category.TypeExpense},
			wantErr: true,
		},
		{
			name:    "UnknownType",
			params:  category.CreateParams{Name: "Groceries", Type: "savings"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := category.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := category.NewService(repo)
			got, err := svc.Create(context.Background(), owner, tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			require.NotNil(t, got.UserID)
			assert.Equal(t, owner, *got.UserID)
		})
	}
}

func TestService_Update(t *testing.T) {
	owner := uuid.New()
	categoryID := uuid.New()

	t.Run("RenameOwned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := category.NewMockRepository(ctrl)
		repo.EXPECT().
			GetCategory(gomock.Any(), owner, categoryID).
			Return(&category.Category{
				ID:     categoryID,
				UserID: &owner,
				Name:   "Food",
				Type:   category.TypeExpense,
			}, nil)
		repo.EXPECT().UpdateCategory(gomock.Any(), owner, gomock.Any()).Return(nil)

		name := "Dining out"
		svc := category.NewService(repo)
		got, err := svc.Update(context.Background(), owner, categoryID, category.UpdateParams{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "Dining out", got.Name)
	})

	t.Run("SystemCategoryIsReadOnly", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := category.NewMockRepository(ctrl)
		repo.EXPECT().
			GetCategory(gomock.Any(), owner, categoryID).
			Return(&category.Category{
				ID:   categoryID,
				Name: "Utilities",
				Type: category.TypeExpense,
			}, nil)

		name := "Mine now"
		svc := category.NewService(repo)
		_, err := svc.Update(context.Background(), owner, categoryID, category.UpdateParams{Name: &name})

		assert.ErrorIs(t, err, category.ErrNotFound)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := category.NewMockRepository(ctrl)
		repo.EXPECT().
			GetCategory(gomock.Any(), owner, categoryID).
			Return(nil, category.ErrNotFound)

		svc := category.NewService(repo)
		_, err := svc.Update(context.Background(), owner, categoryID, category.UpdateParams{})

		assert.ErrorIs(t, err, category.ErrNotFound)
	})
}
