package entities

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NightLayout is the storage format of Sleep.Night.
const NightLayout = "2006-01-02"

// ErrInvalidNight is returned when a night string is not yyyy-mm-dd.
var ErrInvalidNight = errors.New("invalid night")

// Night is the broken-down form of a sleep's night string.
type Night struct {
	Day   int    `json:"day"`
	Month int    `json:"month"`
	Year  int    `json:"year"`
	Date  string `json:"date"`
}

// ParseNight splits a yyyy-mm-dd string into its components.
func ParseNight(s string) (Night, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Night{}, fmt.Errorf("%w: %q", ErrInvalidNight, s)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Night{}, fmt.Errorf("%w: year in %q", ErrInvalidNight, s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Night{}, fmt.Errorf("%w: month in %q", ErrInvalidNight, s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Night{}, fmt.Errorf("%w: day in %q", ErrInvalidNight, s)
	}

	// Reject calendar-impossible dates like 2023-02-30.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return Night{}, fmt.Errorf("%w: %q is not a calendar date", ErrInvalidNight, s)
	}

	return Night{Day: day, Month: month, Year: year, Date: s}, nil
}

// ValidateNight checks that s is exactly in yyyy-mm-dd form.
func ValidateNight(s string) error {
	if _, err := time.Parse(NightLayout, s); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidNight, s)
	}
	return nil
}

// RangeBound is one end of an inclusive date range. Day == 0 means the bound
// covers the whole month.
type RangeBound struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day,omitempty"`
}

// HasDay reports whether the bound narrows to a single day.
func (b RangeBound) HasDay() bool {
	return b.Day != 0
}

// ParseRangeBound accepts "yyyy-mm" or "yyyy-mm-dd".
func ParseRangeBound(s string) (RangeBound, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 && len(parts) != 3 {
		return RangeBound{}, fmt.Errorf("%w: range bound %q", ErrInvalidNight, s)
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return RangeBound{}, fmt.Errorf("%w: range bound %q", ErrInvalidNight, s)
		}
		nums[i] = n
	}

	b := RangeBound{Year: nums[0], Month: nums[1]}
	if len(nums) == 3 {
		b.Day = nums[2]
	}
	if b.Month < 1 || b.Month > 12 || b.Day < 0 || b.Day > 31 {
		return RangeBound{}, fmt.Errorf("%w: range bound %q out of range", ErrInvalidNight, s)
	}
	return b, nil
}

// InRange reports whether n lies within [start, end]. Days are compared only
// when both bounds specify one.
func (n Night) InRange(start, end RangeBound) bool {
	withDay := start.HasDay() && end.HasDay()
	return compareNight(n, start, withDay) >= 0 && compareNight(n, end, withDay) <= 0
}

func compareNight(n Night, b RangeBound, withDay bool) int {
	if c := cmp.Compare(n.Year, b.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(n.Month, b.Month); c != 0 {
		return c
	}
	if !withDay {
		return 0
	}
	return cmp.Compare(n.Day, b.Day)
}
