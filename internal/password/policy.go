// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package password validates passwords against environment-dependent
// policies. Local development accepts short passwords so seeding is easy;
// production requires full complexity.
package password

import (
	"errors"
	"fmt"
	"unicode"
)

// Mode selects which policy applies.
type Mode string

const (
	ModeLocal      Mode = "local"
	ModeProduction Mode = "production"
)

const (
	minLenLocal      = 8
	minLenProduction = 12
)

// ErrTooShort is returned when a password is below the minimum length for
// the selected mode.
var ErrTooShort = errors.New("password too short")

// Validate checks a password against the policy for the given mode.
// Local mode requires only a minimum length of 8. Production additionally
// requires at least 12 characters with an uppercase letter, a lowercase
// letter, a digit, and a special character.
func Validate(pw string, mode Mode) error {
	minLen := minLenLocal
	if mode == ModeProduction {
		minLen = minLenProduction
	}
	if len(pw) < minLen {
		return fmt.Errorf("%w: need at least %d characters", ErrTooShort, minLen)
	}

	if mode != ModeProduction {
		return nil
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return errors.New("password must contain an uppercase letter")
	case !hasLower:
		return errors.New("password must contain a lowercase letter")
	case !hasDigit:
		return errors.New("password must contain a digit")
	case !hasSpecial:
		return errors.New("password must contain a special character")
	}
	return nil
}
