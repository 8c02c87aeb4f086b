package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"inkwell/internal/models"
)

var (
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

const (
	usernameMinLen = 3
	usernameMaxLen = 30
	nameMaxLen     = 50
	bioMaxLen      = 500
)

// User checks every field rule on a candidate user and returns the ordered
// list of violation messages. Uniqueness is checked separately against the
// store by the service layer.
func User(u *models.User) []string {
	var errs []string

	if u.Email == "" {
		errs = append(errs, "Email can't be blank")
	} else if !emailRegex.MatchString(u.Email) {
		errs = append(errs, "Email is invalid")
	}

	switch {
	case u.Username == "":
		errs = append(errs, "Username can't be blank")
	case utf8.RuneCountInString(u.Username) < usernameMinLen:
		errs = append(errs, fmt.Sprintf("Username is too short (minimum is %d characters)", usernameMinLen))
	case utf8.RuneCountInString(u.Username) > usernameMaxLen:
		errs = append(errs, fmt.Sprintf("Username is too long (maximum is %d characters)", usernameMaxLen))
	case !usernameRegex.MatchString(u.Username):
		errs = append(errs, "Username is invalid")
	}

	if utf8.RuneCountInString(u.FirstName) > nameMaxLen {
		errs = append(errs, fmt.Sprintf("First name is too long (maximum is %d characters)", nameMaxLen))
	}
	if utf8.RuneCountInString(u.LastName) > nameMaxLen {
		errs = append(errs, fmt.Sprintf("Last name is too long (maximum is %d characters)", nameMaxLen))
	}
	if utf8.RuneCountInString(u.Bio) > bioMaxLen {
		errs = append(errs, fmt.Sprintf("Bio is too long (maximum is %d characters)", bioMaxLen))
	}

	return errs
}
