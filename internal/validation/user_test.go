package validation

import (
	"strings"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
)

func validUser() *models.User {
	return &models.User{
		Email:    "author@example.com",
		Username: "author",
	}
}

func TestUserValid(t *testing.T) {
	t.Parallel()

	assert.Empty(t, User(validUser()))
}

func TestUserFieldRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*models.User)
		want   string
	}{
		{"blank email", func(u *models.User) { u.Email = "" }, "Email can't be blank"},
		{"malformed email", func(u *models.User) { u.Email = "not-an-email" }, "Email is invalid"},
		{"blank username", func(u *models.User) { u.Username = "" }, "Username can't be blank"},
		{"short username", func(u *models.User) { u.Username = "ab" }, "Username is too short (minimum is 3 characters)"},
		{"long username", func(u *models.User) { u.Username = strings.Repeat("a", 31) }, "Username is too long (maximum is 30 characters)"},
		{"bad username chars", func(u *models.User) { u.Username = "bad name" }, "Username is invalid"},
		{"long first name", func(u *models.User) { u.FirstName = strings.Repeat("a", 51) }, "First name is too long (maximum is 50 characters)"},
		{"long last name", func(u *models.User) { u.LastName = strings.Repeat("a", 51) }, "Last name is too long (maximum is 50 characters)"},
		{"long bio", func(u *models.User) { u.Bio = strings.Repeat("a", 501) }, "Bio is too long (maximum is 500 characters)"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			u := validUser()
			tt.mutate(u)
			errs := User(u)
			assert.Contains(t, errs, tt.want)
		})
	}
}

// Every violated rule reports, not just the first one hit.
func TestUserAggregatesAllFailures(t *testing.T) {
	t.Parallel()

	u := &models.User{
		Email:    "",
		Username: "ab",
		Bio:      strings.Repeat("x", 501),
	}

	errs := User(u)
	assert.Equal(t, []string{
		"Email can't be blank",
		"Username is too short (minimum is 3 characters)",
		"Bio is too long (maximum is 500 characters)",
	}, errs)
}
