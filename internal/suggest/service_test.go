package suggest_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/moneymuse/internal/suggest"
)

func TestService_Category(t *testing.T) {
	owner := uuid.New()

	t.Run("MatchFromHistory", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		want := uuid.New()

		repo := suggest.NewMockRepository(ctrl)
		repo.EXPECT().
			FindCategory(gomock.Any(), owner, "CONTINENTE LISBOA").
			Return(want, nil)

		svc := suggest.NewService(repo)
		got, err := svc.Category(context.Background(), owner, "CONTINENTE LISBOA")

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("EmptyDescriptionSkipsLookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := suggest.NewMockRepository(ctrl)

		svc := suggest.NewService(repo)
		got, err := svc.Category(context.Background(), owner, "")

		require.NoError(t, err)
		assert.Equal(t, uuid.Nil, got)
	})

	t.Run("NoHistory", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := suggest.NewMockRepository(ctrl)
		repo.EXPECT().
			FindCategory(gomock.Any(), owner, "unknown merchant").
			Return(uuid.Nil, nil)

		svc := suggest.NewService(repo)
		got, err := svc.Category(context.Background(), owner, "unknown merchant")

		require.NoError(t, err)
		assert.Equal(t, uuid.Nil, got)
	})
}
