// Package service contains the business rules applied between the HTTP
// layer and the repositories.
package service

import (
	"context"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/notifications"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
	notifier *notifications.Notifier
}

type CreateUserInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Bio       string
	AvatarURL string
}

// UpdateUserInput carries a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	UserID    uint
	Email     *string
	Username  *string
	FirstName *string
	LastName  *string
	Bio       *string
	AvatarURL *string
}

func NewUserService(userRepo repository.UserRepository, notifier *notifications.Notifier) *UserService {
	return &UserService{userRepo: userRepo, notifier: notifier}
}

func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	user := &models.User{
		Email:     in.Email,
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Bio:       in.Bio,
		AvatarURL: in.AvatarURL,
	}

	errs := validation.User(user)
	uniqueErrs, err := s.checkUniqueness(ctx, user, 0)
	if err != nil {
		return nil, err
	}
	errs = append(errs, uniqueErrs...)
	if len(errs) > 0 {
		middleware.ValidationFailures.WithLabelValues("user").Inc()
		return nil, models.NewValidationErrors(errs...)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if _, ok := err.(*models.ValidationErrors); ok {
			middleware.ConstraintViolations.WithLabelValues("user").Inc()
		}
		return nil, err
	}

	return s.userRepo.GetByID(ctx, user.ID)
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.AvatarURL != nil {
		user.AvatarURL = *in.AvatarURL
	}

	errs := validation.User(user)
	uniqueErrs, err := s.checkUniqueness(ctx, user, user.ID)
	if err != nil {
		return nil, err
	}
	errs = append(errs, uniqueErrs...)
	if len(errs) > 0 {
		middleware.ValidationFailures.WithLabelValues("user").Inc()
		return nil, models.NewValidationErrors(errs...)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if _, ok := err.(*models.ValidationErrors); ok {
			middleware.ConstraintViolations.WithLabelValues("user").Inc()
		}
		return nil, err
	}

	return s.userRepo.GetByID(ctx, user.ID)
}

// DeleteUser removes the user and, by cascade, every post it owns.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.PublishEvent(ctx, notifications.EventUserDeleted, map[string]interface{}{
		"user_id": id,
	})
	return nil
}

// checkUniqueness runs the application-level uniqueness pre-checks. These
// only provide a friendly fast-path error; the database constraints remain
// the authority under concurrent writes.
func (s *UserService) checkUniqueness(ctx context.Context, user *models.User, excludeID uint) ([]string, error) {
	var errs []string

	if user.Email != "" {
		taken, err := s.userRepo.EmailTaken(ctx, user.Email, excludeID)
		if err != nil {
			return nil, err
		}
		if taken {
			errs = append(errs, "Email has already been taken")
		}
	}
	if user.Username != "" {
		taken, err := s.userRepo.UsernameTaken(ctx, user.Username, excludeID)
		if err != nil {
			return nil, err
		}
		if taken {
			errs = append(errs, "Username has already been taken")
		}
	}

	return errs, nil
}
