package service

import (
	"context"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/notifications"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	notifier *notifications.Notifier
	now      func() time.Time
}

type CreatePostInput struct {
	Title       string
	Content     string
	Excerpt     string
	Slug        string
	Status      string
	PublishedAt *time.Time
	UserID      uint
}

// UpdatePostInput carries a partial update; nil fields are left untouched.
type UpdatePostInput struct {
	PostID      uint
	Title       *string
	Content     *string
	Excerpt     *string
	Slug        *string
	Status      *string
	PublishedAt *time.Time
	UserID      *uint
}

type ListPostsInput struct {
	Status string
	Sort   string
	Limit  int
	Offset int
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	notifier *notifications.Notifier,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	post := &models.Post{
		Title:       in.Title,
		Content:     in.Content,
		Excerpt:     in.Excerpt,
		Slug:        in.Slug,
		Status:      models.PostStatus(in.Status),
		PublishedAt: in.PublishedAt,
		UserID:      in.UserID,
	}
	if post.Status == "" {
		post.Status = models.PostStatusDraft
	}

	// On create every field counts as changed, so both derivations apply.
	if post.Title != "" {
		post.Slug = validation.Slugify(post.Title)
	}
	if post.Status == models.PostStatusPublished && in.PublishedAt == nil {
		now := s.now()
		post.PublishedAt = &now
	}

	errs := validation.Post(post)
	moreErrs, err := s.checkReferences(ctx, post, 0)
	if err != nil {
		return nil, err
	}
	errs = append(errs, moreErrs...)
	if len(errs) > 0 {
		middleware.ValidationFailures.WithLabelValues("post").Inc()
		return nil, models.NewValidationErrors(errs...)
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		if _, ok := err.(*models.ValidationErrors); ok {
			middleware.ConstraintViolations.WithLabelValues("post").Inc()
		}
		return nil, err
	}

	stored, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if stored.Status == models.PostStatusPublished {
		s.publishPublished(ctx, stored)
	}
	return stored, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	if in.Status != "" && !models.PostStatus(in.Status).Valid() {
		return nil, models.NewValidationErrors("Status is not included in the list")
	}
	return s.postRepo.List(ctx, repository.ListPostsQuery{
		Status: models.PostStatus(in.Status),
		Sort:   in.Sort,
		Limit:  in.Limit,
		Offset: in.Offset,
	})
}

func (s *PostService) SearchPosts(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	if query == "" {
		return nil, models.NewValidationErrors("Search query is required")
	}
	return s.postRepo.Search(ctx, query, limit, offset)
}

func (s *PostService) GetUserPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("User", userID)
	}
	return s.postRepo.GetByUserID(ctx, userID, limit, offset)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	// Diff against the stored record before applying anything; the
	// derivation rules fire on change, not on mere presence.
	titleChanged := in.Title != nil && *in.Title != post.Title
	statusChanged := in.Status != nil && models.PostStatus(*in.Status) != post.Status
	storedPublishedAt := post.PublishedAt

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.Excerpt != nil {
		post.Excerpt = *in.Excerpt
	}
	if in.Slug != nil {
		post.Slug = *in.Slug
	}
	if in.Status != nil {
		post.Status = models.PostStatus(*in.Status)
	}
	if in.PublishedAt != nil {
		// Pass-through: a directly supplied value is kept unless the
		// transition rule below fires and overwrites it.
		post.PublishedAt = in.PublishedAt
	}
	if in.UserID != nil {
		post.UserID = *in.UserID
	}

	if titleChanged {
		post.Slug = validation.Slugify(post.Title)
	}
	becamePublished := statusChanged &&
		post.Status == models.PostStatusPublished &&
		storedPublishedAt == nil
	if becamePublished {
		now := s.now()
		post.PublishedAt = &now
	}

	errs := validation.Post(post)
	moreErrs, err := s.checkReferences(ctx, post, post.ID)
	if err != nil {
		return nil, err
	}
	errs = append(errs, moreErrs...)
	if len(errs) > 0 {
		middleware.ValidationFailures.WithLabelValues("post").Inc()
		return nil, models.NewValidationErrors(errs...)
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		if _, ok := err.(*models.ValidationErrors); ok {
			middleware.ConstraintViolations.WithLabelValues("post").Inc()
		}
		return nil, err
	}

	stored, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if becamePublished {
		s.publishPublished(ctx, stored)
	}
	return stored, nil
}

func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	return s.postRepo.Delete(ctx, id)
}

// checkReferences runs the slug uniqueness and author existence pre-checks.
// The database constraints remain the authority under concurrent writes.
func (s *PostService) checkReferences(ctx context.Context, post *models.Post, excludeID uint) ([]string, error) {
	var errs []string

	if post.Slug != "" {
		taken, err := s.postRepo.SlugTaken(ctx, post.Slug, excludeID)
		if err != nil {
			return nil, err
		}
		if taken {
			errs = append(errs, "Slug has already been taken")
		}
	}

	if post.UserID == 0 {
		errs = append(errs, "User must exist")
	} else {
		exists, err := s.userRepo.Exists(ctx, post.UserID)
		if err != nil {
			return nil, err
		}
		if !exists {
			errs = append(errs, "User must exist")
		}
	}

	return errs, nil
}

func (s *PostService) publishPublished(ctx context.Context, post *models.Post) {
	s.notifier.PublishEvent(ctx, notifications.EventPostPublished, map[string]interface{}{
		"post_id":      post.ID,
		"slug":         post.Slug,
		"author_id":    post.UserID,
		"published_at": post.PublishedAt,
	})
}
