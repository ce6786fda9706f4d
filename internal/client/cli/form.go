package cli

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/common"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FormErrors maps a form field to the message shown next to it.
type FormErrors map[string]string

func (e FormErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f+": "+e[f])
	}
	return strings.Join(msgs, "; ")
}

func (e FormErrors) Unwrap() error {
	return common.ErrValidation
}

// ValidateForm checks the required fields of the user form. It returns nil
// or a FormErrors value.
func ValidateForm(name, email string) error {
	errs := FormErrors{}

	name = strings.TrimSpace(name)
	switch {
	case name == "":
		errs["name"] = "Name is required"
	case len([]rune(name)) < 2:
		errs["name"] = "Name must be at least 2 characters"
	}

	email = strings.TrimSpace(email)
	switch {
	case email == "":
		errs["email"] = "Email is required"
	case !emailRe.MatchString(email):
		errs["email"] = "Please enter a valid email address"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// readDraft runs the add-user form.
func readDraft(r *bufio.Reader, w io.Writer) (models.Draft, error) {
	var d models.Draft
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Name", &d.Name},
		{"Email", &d.Email},
		{"Company (optional)", &d.Company},
		{"Phone (optional)", &d.Phone},
		{"Website (optional)", &d.Website},
	}
	for _, f := range fields {
		v, err := GetSimpleText(r, f.prompt, w)
		if err != nil {
			return models.Draft{}, fmt.Errorf("read %s: %w", strings.ToLower(f.prompt), err)
		}
		*f.dst = v
	}

	addr, err := GetSimpleText(r, "Address: street, suite, city, zipcode (optional)", w)
	if err != nil {
		return models.Draft{}, fmt.Errorf("read address: %w", err)
	}
	if addr != "" {
		a := ParseAddress(addr)
		d.Address = &a
	}

	if err := ValidateForm(d.Name, d.Email); err != nil {
		return models.Draft{}, err
	}
	return d, nil
}

// readEdit runs the edit form pre-filled with u. An empty answer keeps the
// current value.
func readEdit(r *bufio.Reader, w io.Writer, u models.User) (models.User, error) {
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Name", &u.Name},
		{"Email", &u.Email},
		{"Company", &u.Company.Name},
		{"Phone", &u.Phone},
		{"Website", &u.Website},
	}
	for _, f := range fields {
		v, err := GetTextWithDefault(r, f.prompt, *f.dst, w)
		if err != nil {
			return models.User{}, fmt.Errorf("read %s: %w", strings.ToLower(f.prompt), err)
		}
		*f.dst = strings.TrimSpace(v)
	}

	current := addressLine(u.Address)
	addr, err := GetTextWithDefault(r, "Address", current, w)
	if err != nil {
		return models.User{}, fmt.Errorf("read address: %w", err)
	}
	if addr != current {
		geo := u.Address.Geo
		u.Address = ParseAddress(addr)
		u.Address.Geo = geo
	}

	if err := ValidateForm(u.Name, u.Email); err != nil {
		return models.User{}, err
	}
	return u, nil
}
