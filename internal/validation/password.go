package validation

import "errors"

var commonPasswords = map[string]struct{}{
	"password1234": {},
	"123456789012": {},
	"qwertyuiop12": {},
	"letmein12345": {},
}

// ValidatePassword enforces a minimum length and rejects a short list of
// very common passwords.
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return errors.New("password must be at least 12 characters")
	}

	if len(password) > 128 {
		return errors.New("password is too long (max 128 characters)")
	}

	if _, ok := commonPasswords[password]; ok {
		return errors.New("password is too common, please choose a stronger one")
	}

	return nil
}
