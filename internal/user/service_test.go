package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/moneymuse/internal/user"
)

func TestService_Register(t *testing.T) {
	type testCase struct {
		name      string
		params    user.RegisterParams
		setupMock func(m *user.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: user.RegisterParams{
				Email:    "Jamie@Example.com",
				Name:     "Jamie",
				Password: "correct horse",
			},
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *user.User) error {
						u.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "InvalidEmail",
			params:  user.RegisterParams{Email: "not-an-email", Password: "correct horse"},
			wantErr: true,
		},
		{
			name:    "ShortPassword",
			params:  user.RegisterParams{Email: "jamie@example.com", Password: "short"},
			wantErr: true,
		},
		{
			name: "EmailTaken",
			params: user.RegisterParams{
				Email:    "jamie@example.com",
				Password: "correct horse",
			},
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					Return(user.ErrEmailTaken)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := user.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := user.NewService(repo)
			got, err := svc.Register(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "jamie@example.com", got.Email)
			assert.NotEqual(t, tt.params.Password, got.PasswordHash)
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &user.User{
		ID:           uuid.New(),
		Email:        "jamie@example.com",
		PasswordHash: string(hash),
	}

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().
			GetUserByEmail(gomock.Any(), "jamie@example.com").
			Return(stored, nil)

		svc := user.NewService(repo)
		got, err := svc.Authenticate(context.Background(), " Jamie@Example.com ", "correct horse")

		require.NoError(t, err)
		assert.Equal(t, stored.ID, got.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().
			GetUserByEmail(gomock.Any(), "jamie@example.com").
			Return(stored, nil)

		svc := user.NewService(repo)
		_, err := svc.Authenticate(context.Background(), "jamie@example.com", "wrong")

		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("UnknownEmailLooksLikeWrongPassword", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().
			GetUserByEmail(gomock.Any(), "nobody@example.com").
			Return(nil, user.ErrNotFound)

		svc := user.NewService(repo)
		_, err := svc.Authenticate(context.Background(), "nobody@example.com", "whatever")

		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}

func TestService_ChangePassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("old password"), bcrypt.MinCost)
	require.NoError(t, err)

	userID := uuid.New()
	stored := &user.User{ID: userID, PasswordHash: string(hash)}

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetUser(gomock.Any(), userID).Return(stored, nil)
		repo.EXPECT().
			UpdatePassword(gomock.Any(), userID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, newHash string) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("new password")))
				return nil
			})

		svc := user.NewService(repo)
		assert.NoError(t, svc.ChangePassword(context.Background(), userID, "old password", "new password"))
	})

	t.Run("WrongCurrentPassword", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetUser(gomock.Any(), userID).Return(stored, nil)

		svc := user.NewService(repo)
		err := svc.ChangePassword(context.Background(), userID, "wrong", "new password")

		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}
