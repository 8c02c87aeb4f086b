package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context, int, int) ([]*models.User, error)
	existsFn        func(context.Context, uint) (bool, error)
	emailTakenFn    func(context.Context, string, uint) (bool, error)
	usernameTakenFn func(context.Context, string, uint) (bool, error)
	countPostsFn    func(context.Context, uint) (int64, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *userRepoStub) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	return s.emailTakenFn(ctx, email, excludeID)
}
func (s *userRepoStub) UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error) {
	return s.usernameTakenFn(ctx, username, excludeID)
}
func (s *userRepoStub) CountPosts(ctx context.Context, userID uint) (int64, error) {
	return s.countPostsFn(ctx, userID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Email: "stored@example.com", Username: "stored"}, nil
		},
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]*models.User, error) { return nil, nil },
		existsFn:        func(_ context.Context, _ uint) (bool, error) { return true, nil },
		emailTakenFn:    func(_ context.Context, _ string, _ uint) (bool, error) { return false, nil },
		usernameTakenFn: func(_ context.Context, _ string, _ uint) (bool, error) { return false, nil },
		countPostsFn:    func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

func assertValidationError(t *testing.T, err error, messages ...string) *models.ValidationErrors {
	t.Helper()
	require.Error(t, err)
	var vErrs *models.ValidationErrors
	require.ErrorAs(t, err, &vErrs)
	for _, msg := range messages {
		assert.Contains(t, vErrs.Messages, msg)
	}
	return vErrs
}

func TestUserService_CreateUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("valid input creates and reloads", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		var created *models.User
		repo.createFn = func(_ context.Context, u *models.User) error {
			u.ID = 42
			created = u
			return nil
		}
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			require.Equal(t, uint(42), id)
			return &models.User{ID: id, Email: created.Email, Username: created.Username}, nil
		}

		svc := NewUserService(repo, notifications.NewNotifier(nil))
		user, err := svc.CreateUser(ctx, CreateUserInput{
			Email:    "new@example.com",
			Username: "newuser",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(42), user.ID)
		assert.Equal(t, "new@example.com", user.Email)
	})

	t.Run("aggregates field and uniqueness failures", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.usernameTakenFn = func(_ context.Context, _ string, _ uint) (bool, error) { return true, nil }

		svc := NewUserService(repo, notifications.NewNotifier(nil))
		_, err := svc.CreateUser(ctx, CreateUserInput{
			Email:    "bad-email",
			Username: "taken",
		})
		vErrs := assertValidationError(t, err,
			"Email is invalid",
			"Username has already been taken",
		)
		assert.Len(t, vErrs.Messages, 2)
	})

	t.Run("repo is not called when validation fails", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.createFn = func(_ context.Context, _ *models.User) error {
			t.Fatal("Create must not be called for invalid input")
			return nil
		}

		svc := NewUserService(repo, notifications.NewNotifier(nil))
		_, err := svc.CreateUser(ctx, CreateUserInput{})
		assertValidationError(t, err, "Email can't be blank", "Username can't be blank")
	})

	t.Run("store constraint violation surfaces as validation error", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.createFn = func(_ context.Context, _ *models.User) error {
			return models.NewValidationErrors("Email has already been taken")
		}

		svc := NewUserService(repo, notifications.NewNotifier(nil))
		_, err := svc.CreateUser(ctx, CreateUserInput{
			Email:    "dupe@example.com",
			Username: "dupe",
		})
		assertValidationError(t, err, "Email has already been taken")
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("applies only provided fields", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		stored := &models.User{
			ID:       7,
			Email:    "old@example.com",
			Username: "olduser",
			Bio:      "old bio",
		}
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.User, error) { return stored, nil }
		var updated *models.User
		repo.updateFn = func(_ context.Context, u *models.User) error {
			updated = u
			return nil
		}

		svc := NewUserService(repo, notifications.NewNotifier(nil))
		newBio := "new bio"
		_, err := svc.UpdateUser(ctx, UpdateUserInput{UserID: 7, Bio: &newBio})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "new bio", updated.Bio)
		assert.Equal(t, "old@example.com", updated.Email)
		assert.Equal(t, "olduser", updated.Username)
	})

	t.Run("uniqueness check excludes the record itself", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.emailTakenFn = func(_ context.Context, email string, excludeID uint) (bool, error) {
			assert.Equal(t, uint(1), excludeID)
			return false, nil
		}

		svc := NewUserService(repo, notifications.NewNotifier(nil))
		email := "same@example.com"
		_, err := svc.UpdateUser(ctx, UpdateUserInput{UserID: 1, Email: &email})
		assert.NoError(t, err)
	})

	t.Run("missing user propagates not found", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}

		svc := NewUserService(repo, notifications.NewNotifier(nil))
		_, err := svc.UpdateUser(ctx, UpdateUserInput{UserID: 99})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("delegates to repo", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		deleted := uint(0)
		repo.deleteFn = func(_ context.Context, id uint) error {
			deleted = id
			return nil
		}

		svc := NewUserService(repo, notifications.NewNotifier(nil))
		require.NoError(t, svc.DeleteUser(ctx, 5))
		assert.Equal(t, uint(5), deleted)
	})

	t.Run("propagates repo error without publishing", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repoErr := errors.New("boom")
		repo.deleteFn = func(_ context.Context, _ uint) error { return repoErr }

		svc := NewUserService(repo, notifications.NewNotifier(nil))
		assert.ErrorIs(t, svc.DeleteUser(ctx, 5), repoErr)
	})
}
