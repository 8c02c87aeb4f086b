// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with generated users and posts. Writes go
// through the service layer so the same slug and published_at rules apply
// as for real API traffic.
type Seeder struct {
	db          *gorm.DB
	userService *service.UserService
	postService *service.PostService
	rand        *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided DB and services.
func NewSeeder(db *gorm.DB, userService *service.UserService, postService *service.PostService) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:          db,
		userService: userService,
		postService: postService,
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data, children first.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	if err := s.db.Exec("DELETE FROM posts").Error; err != nil {
		return fmt.Errorf("clear posts: %w", err)
	}
	if err := s.db.Exec("DELETE FROM users").Error; err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	return nil
}

// Seed creates the requested number of users and posts.
func (s *Seeder) Seed(ctx context.Context, opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.createUsers(ctx, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	posts, err := s.createPosts(ctx, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("create posts: %w", err)
	}
	log.Printf("✓ %d posts created", posts)

	return nil
}

func (s *Seeder) createUsers(ctx context.Context, n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.userService.CreateUser(ctx, service.CreateUserInput{
			Email:     gofakeit.Email(),
			Username:  fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Bio:       gofakeit.Sentence(10),
			AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		})
		if err != nil {
			// Generated email/username collisions are rare; skip and continue.
			if _, ok := err.(*models.ValidationErrors); ok {
				continue
			}
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) createPosts(ctx context.Context, users []*models.User, n int) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	statuses := []string{
		string(models.PostStatusDraft),
		string(models.PostStatusPublished),
		string(models.PostStatusPublished), // weight towards published
		string(models.PostStatusArchived),
	}

	created := 0
	for i := 0; i < n; i++ {
		author := users[s.rand.Intn(len(users))]
		// Titles get a numeric suffix so derived slugs stay unique.
		title := fmt.Sprintf("%s %d", gofakeit.Sentence(4), gofakeit.Number(1000, 9999))

		_, err := s.postService.CreatePost(ctx, service.CreatePostInput{
			Title:   title,
			Content: gofakeit.Paragraph(2, 4, 8, "\n\n"),
			Excerpt: gofakeit.Sentence(12),
			Status:  statuses[s.rand.Intn(len(statuses))],
			UserID:  author.ID,
		})
		if err != nil {
			if _, ok := err.(*models.ValidationErrors); ok {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}
