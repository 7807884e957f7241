package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rfernando-oulu/eComSync/pkg/form"
)

const (
	dateOnlyLayout  = "2006-01-02"
	localTimeLayout = "2006-01-02T15:04:05"
)

var errInvalidNumber = errors.New("invalid number")

// parseFormQuery reads ?form=short|long, falling back to def.
func parseFormQuery(c *gin.Context, def form.Form) (form.Form, error) {
	f, err := form.Parse(c.Query("form"), def)
	if err != nil {
		return "", newValidationError("form", "invalid_form", "form must be 'short' or 'long'")
	}
	return f, nil
}

// parseID accepts only positive decimal ids.
func parseID(raw string) (int64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, ErrInvalidID
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return 0, ErrInvalidID
		}
	}
	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}

// flexFloat decodes a JSON number or a numeric string. An empty string is zero.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	raw, isString, err := numericLiteral(data)
	if err != nil {
		return err
	}
	if isString && raw == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return errInvalidNumber
	}
	*f = flexFloat(v)
	return nil
}

// flexInt decodes a JSON integer or an integer string.
type flexInt int64

func (i *flexInt) UnmarshalJSON(data []byte) error {
	raw, isString, err := numericLiteral(data)
	if err != nil {
		return err
	}
	if isString && raw == "" {
		return errInvalidNumber
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int64(f)) {
			return errInvalidNumber
		}
		v = int64(f)
	}
	*i = flexInt(v)
	return nil
}

func numericLiteral(data []byte) (string, bool, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", false, err
		}
		return strings.TrimSpace(s), true, nil
	}
	return string(data), false, nil
}

// flexTime decodes RFC 3339, YYYY-MM-DDTHH:MM:SS (UTC) or YYYY-MM-DD.
type flexTime struct {
	time.Time
}

func (t *flexTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := parseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func parseTimestamp(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return parsed.UTC(), nil
	}
	if parsed, err := time.ParseInLocation(localTimeLayout, trimmed, time.UTC); err == nil {
		return parsed, nil
	}
	if parsed, err := time.ParseInLocation(dateOnlyLayout, trimmed, time.UTC); err == nil {
		return parsed, nil
	}
	return time.Time{}, errors.New("invalid_time")
}

func floatOrZero(f *flexFloat) float64 {
	if f == nil {
		return 0
	}
	return float64(*f)
}

func timeOrNil(t *flexTime) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}
