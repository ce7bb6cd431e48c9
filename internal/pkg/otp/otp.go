// Package otp checks the short single-use verification codes issued to customers
// before they may cancel a subscription.
package otp

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const CodeLength = 6

var (
	ErrHashingFailed   = errors.New("verification code hashing failed")
	ErrCodeMismatch    = errors.New("verification code mismatch")
	ErrInvalidCodeForm = errors.New("invalid verification code format")
)

const DefaultCost = bcrypt.DefaultCost

// WellFormed reports whether code has the issued shape: exactly six ASCII letters or digits.
func WellFormed(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		isDigit := c >= '0' && c <= '9'
		isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !isDigit && !isLetter {
			return false
		}
	}
	return true
}

func Hash(code string) (string, error) {
	if !WellFormed(code) {
		return "", ErrInvalidCodeForm
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(code), DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}

	return string(hashedBytes), nil
}

// Compare is an exact, case-sensitive match of code against the stored hash.
func Compare(hashedCode, code string) error {
	if hashedCode == "" || !WellFormed(code) {
		return ErrInvalidCodeForm
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashedCode), []byte(code))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrCodeMismatch
		}
		return err
	}

	return nil
}
