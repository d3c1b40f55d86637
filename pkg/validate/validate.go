/*
Package validate contains the pure input validators for the intake dialogue.

Every function takes raw user text and returns either a normalized value or an
*Error whose message is safe to render back into the chat. Malformed user
input is never a panic; only broken configuration is.
*/
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/ledscape/intake/pkg/domain"
)

// Error is a user-correctable validation failure. The message re-asks the
// question, so handlers can surface it verbatim.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

func errorf(format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

var sizeReplacer = strings.NewReplacer("×", "x", "X", "x", "*", "x", "mm", "", "MM", "", "Mm", "")

// LEDSize parses a wall size like "6000x3000", "6000 × 3000" or
// "6000mm*3000mm" into width and height in millimeters. Both dimensions must
// be positive multiples of the 500mm module pitch and at least one module.
func LEDSize(input string) (width, height int, err error) {
	s := sizeReplacer.Replace(strings.ToLower(strings.TrimSpace(input)))

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == 'x' || unicode.IsSpace(r)
	})
	if len(parts) != 2 {
		return 0, 0, errorf("please enter the size as WIDTHxHEIGHT in millimeters, e.g. 6000x3000")
	}

	width, werr := strconv.Atoi(parts[0])
	height, herr := strconv.Atoi(parts[1])
	if werr != nil || herr != nil || width <= 0 || height <= 0 {
		return 0, 0, errorf("please enter the size as WIDTHxHEIGHT in millimeters, e.g. 6000x3000")
	}

	if width < domain.ModulePitchMM || height < domain.ModulePitchMM {
		return 0, 0, errorf("%dx%d is below the minimum 500×500mm module size", width, height)
	}
	if width%domain.ModulePitchMM != 0 || height%domain.ModulePitchMM != 0 {
		return 0, 0, errorf("LED walls are built in 500mm units, so both dimensions must be multiples of 500 (got %dx%d)", width, height)
	}

	return width, height, nil
}

// CanonicalSize renders a validated size in its canonical WIDTHxHEIGHT form.
func CanonicalSize(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}

// StageHeight parses a non-negative stage height in millimeters.
// A bare number or a number with an "mm" suffix is accepted.
func StageHeight(input string) (int, error) {
	s := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(input)), "mm")
	s = strings.TrimSpace(s)

	h, err := strconv.Atoi(s)
	if err != nil || h < 0 {
		return 0, errorf("please enter the stage height in millimeters (0 if the wall stands on the floor)")
	}
	return h, nil
}

var phonePattern = regexp.MustCompile(`^01[016789]\d{7,8}$`)

// Phone normalizes a Korean mobile number to its canonical dashed form,
// e.g. "01012345678" or "010.1234.5678" become "010-1234-5678".
func Phone(input string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		if r == '-' || r == '.' || r == ' ' {
			return -1
		}
		return 'x' // any other character poisons the match below
	}, strings.TrimSpace(input))

	if !phonePattern.MatchString(digits) {
		return "", errorf("that doesn't look like a Korean mobile number; please enter it like 010-1234-5678")
	}

	// 11 digits split 3-4-4, legacy 10 digits split 3-3-4.
	mid := len(digits) - 7
	return digits[:3] + "-" + digits[3:mid+3] + "-" + digits[mid+3:], nil
}

var dateLayouts = []string{"2006-01-02", "2006.01.02", "2006/01/02"}

// Period parses an event date range like "2026-09-20 ~ 2026-09-22".
// A single date is accepted as a one-day event. The end date must not
// precede the start date.
func Period(input string) (domain.Period, error) {
	raw := strings.TrimSpace(input)

	parts := strings.Split(raw, "~")
	if len(parts) > 2 {
		return domain.Period{}, errorf("please enter the event period as START ~ END, e.g. 2026-09-20 ~ 2026-09-22")
	}

	start, err := parseDate(parts[0])
	if err != nil {
		return domain.Period{}, err
	}

	end := start
	if len(parts) == 2 {
		if end, err = parseDate(parts[1]); err != nil {
			return domain.Period{}, err
		}
	}

	if end.Before(start) {
		return domain.Period{}, errorf("the end date is before the start date")
	}

	return domain.Period{Start: start, End: end}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errorf("I couldn't read %q as a date; please use YYYY-MM-DD", s)
}
