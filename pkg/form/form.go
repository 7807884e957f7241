// Package form selects how much of an entity a response carries.
package form

import (
	"errors"
	"strings"
)

type Form string

const (
	Short Form = "short"
	Long  Form = "long"
)

var ErrInvalidForm = errors.New("invalid_form")

// Parse reads the form query value, falling back to def when it is empty.
func Parse(raw string, def Form) (Form, error) {
	switch Form(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return def, nil
	case Short:
		return Short, nil
	case Long:
		return Long, nil
	default:
		return "", ErrInvalidForm
	}
}

func (f Form) IsLong() bool { return f == Long }
