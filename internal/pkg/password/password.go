package password

import (
	"golang.org/x/crypto/bcrypt"

	"rinkbook/internal/pkg/errs"
)

var ErrEmptyPassword = errs.New("password must not be empty")

// Hash returns the bcrypt hash of plain at the default cost.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", errs.Wrap(err, "failed to hash password")
	}
	return string(hashed), nil
}

// Compare reports whether plain matches the stored bcrypt hash. Any
// mismatch or malformed hash yields a non-nil error.
func Compare(hashed, plain string) error {
	if hashed == "" || plain == "" {
		return ErrEmptyPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return errs.Wrap(err, "password mismatch")
	}
	return nil
}
