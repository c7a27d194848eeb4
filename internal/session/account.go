package session

import (
	"errors"
	"strings"
)

// ErrEmailRequired is returned by Login for a blank email.
var ErrEmailRequired = errors.New("email is required")

// Account identifies the learner for the lifetime of a session. It is
// never persisted and no credential is checked.
type Account struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Login builds an Account. The second argument is the password the form
// collects; it is ignored. When name is blank the local part of the email
// is used.
func Login(email, _, name string) (Account, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return Account{}, ErrEmailRequired
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	return Account{Email: email, Name: name}, nil
}
