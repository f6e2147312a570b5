// Package validation checks form input before it is sent to the backend.
package validation

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/dmitrijs2005/stockdash/internal/client/models"
)

// ErrInvalidInput is matched by every FieldErrors value.
var ErrInvalidInput = errors.New("invalid input")

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

func (fe FieldErrors) Is(target error) bool { return target == ErrInvalidInput }

// Messages returns the distinct messages in field order.
func (fe FieldErrors) Messages() []string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seen := make(map[string]bool, len(keys))
	var out []string
	for _, k := range keys {
		if !seen[fe[k]] {
			seen[fe[k]] = true
			out = append(out, fe[k])
		}
	}
	return out
}

func (fe FieldErrors) err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

const (
	MsgAllRequired      = "All fields are required"
	MsgInvalidEmail     = "Please enter a valid email address"
	MsgPasswordCriteria = "Please meet all password requirements"
	MsgPasswordMismatch = "Passwords do not match"
	MsgNameRequired     = "Name is required"
	MsgEmailRequired    = "Email is required"
	MsgEmailFormat      = "Invalid email format"
	MsgUnknownRole      = "Unknown role"
	MsgUnknownStatus    = "Unknown status"
)

var (
	emailRe     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	looseEmail  = regexp.MustCompile(`\S+@\S+\.\S+`)
	specialRune = "@#$%^&+=!"
)

// Email reports whether s has the shape local@domain.tld.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// Criterion is one password rule.
type Criterion string

const (
	MinLength Criterion = "at least 8 characters"
	Upper     Criterion = "an uppercase letter"
	Lower     Criterion = "a lowercase letter"
	Number    Criterion = "a number"
	Special   Criterion = "a special character (@#$%^&+=!)"
)

// Criteria lists every password rule in display order.
var Criteria = []Criterion{MinLength, Upper, Lower, Number, Special}

// Password returns the criteria s fails, in display order.
func Password(s string) []Criterion {
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range s {
		switch {
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case 'a' <= r && r <= 'z':
			hasLower = true
		case '0' <= r && r <= '9':
			hasDigit = true
		case strings.ContainsRune(specialRune, r):
			hasSpecial = true
		}
	}

	var missing []Criterion
	if len([]rune(s)) < 8 {
		missing = append(missing, MinLength)
	}
	if !hasUpper {
		missing = append(missing, Upper)
	}
	if !hasLower {
		missing = append(missing, Lower)
	}
	if !hasDigit {
		missing = append(missing, Number)
	}
	if !hasSpecial {
		missing = append(missing, Special)
	}
	return missing
}

// Login checks the login form. Only presence and email shape are enforced;
// password rules belong to signup.
func Login(email, password string) error {
	fe := FieldErrors{}
	if strings.TrimSpace(email) == "" || password == "" {
		fe["form"] = MsgAllRequired
		return fe
	}
	if !Email(strings.TrimSpace(email)) {
		fe["email"] = MsgInvalidEmail
	}
	return fe.err()
}

// SignupForm is the data entered on the signup view.
type SignupForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

func Signup(f SignupForm) error {
	fe := FieldErrors{}
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Email) == "" || f.Password == "" || f.ConfirmPassword == "" {
		fe["form"] = MsgAllRequired
		return fe
	}
	if !Email(strings.TrimSpace(f.Email)) {
		fe["email"] = MsgInvalidEmail
	}
	if len(Password(f.Password)) > 0 {
		fe["password"] = MsgPasswordCriteria
	}
	if f.Password != f.ConfirmPassword {
		fe["confirmPassword"] = MsgPasswordMismatch
	}
	return fe.err()
}

// UserUpdate checks an admin edit of a user record.
func UserUpdate(u models.UserUpdate) error {
	fe := FieldErrors{}
	if strings.TrimSpace(u.Name) == "" {
		fe["name"] = MsgNameRequired
	}
	switch email := strings.TrimSpace(u.Email); {
	case email == "":
		fe["email"] = MsgEmailRequired
	case !looseEmail.MatchString(email):
		fe["email"] = MsgEmailFormat
	}
	if !u.Role.Valid() {
		fe["role"] = MsgUnknownRole
	}
	if !u.Status.Valid() {
		fe["status"] = MsgUnknownStatus
	}
	return fe.err()
}
