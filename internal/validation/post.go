package validation

import (
	"fmt"
	"unicode/utf8"

	"inkwell/internal/models"
)

const (
	titleMinLen   = 3
	titleMaxLen   = 200
	contentMinLen = 10
	excerptMaxLen = 300
)

// Post checks every field rule on a candidate post and returns the ordered
// list of violation messages. The slug is expected to be derived before this
// runs; uniqueness is checked separately against the store.
func Post(p *models.Post) []string {
	var errs []string

	switch {
	case p.Title == "":
		errs = append(errs, "Title can't be blank")
	case utf8.RuneCountInString(p.Title) < titleMinLen:
		errs = append(errs, fmt.Sprintf("Title is too short (minimum is %d characters)", titleMinLen))
	case utf8.RuneCountInString(p.Title) > titleMaxLen:
		errs = append(errs, fmt.Sprintf("Title is too long (maximum is %d characters)", titleMaxLen))
	}

	switch {
	case p.Content == "":
		errs = append(errs, "Content can't be blank")
	case utf8.RuneCountInString(p.Content) < contentMinLen:
		errs = append(errs, fmt.Sprintf("Content is too short (minimum is %d characters)", contentMinLen))
	}

	if p.Slug == "" {
		errs = append(errs, "Slug can't be blank")
	} else if !ValidSlug(p.Slug) {
		errs = append(errs, "Slug is invalid")
	}

	if !p.Status.Valid() {
		errs = append(errs, "Status is not included in the list")
	}

	if utf8.RuneCountInString(p.Excerpt) > excerptMaxLen {
		errs = append(errs, fmt.Sprintf("Excerpt is too long (maximum is %d characters)", excerptMaxLen))
	}

	return errs
}
