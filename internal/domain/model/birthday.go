package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"santa-admin-bot/internal/domain"
)

// DefaultGreeting matches the value the database shipped with; old backups
// restore it verbatim.
const DefaultGreeting = "З Днем Народження!"

// Birthday stores a birth date as "DD.MM" or "DD.MM.YYYY". The day worker
// matches on the DD.MM prefix, so both forms greet alike.
type Birthday struct {
	UserID   int64
	Username string
	FullName string
	Date     string
	AddedBy  int64
	AddedAt  time.Time
}

// GreetingSettings is the singleton row controlling how greetings look.
type GreetingSettings struct {
	GifFileID string
	Greeting  string
}

func (g GreetingSettings) Text() string {
	if g.Greeting == "" {
		return DefaultGreeting
	}
	return g.Greeting
}

// NormalizeBirthDate validates and canonicalizes user input. Accepted forms
// are DD.MM and DD.MM.YYYY; day and month are zero-padded on the way out.
func NormalizeBirthDate(s string) (string, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 2 && len(parts) != 3 {
		return "", fmt.Errorf("%w: birth date must be DD.MM or DD.MM.YYYY", domain.ErrInvalidArgument)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 || day > 31 {
		return "", fmt.Errorf("%w: bad day %q", domain.ErrInvalidArgument, parts[0])
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return "", fmt.Errorf("%w: bad month %q", domain.ErrInvalidArgument, parts[1])
	}
	if day > daysIn(month) {
		return "", fmt.Errorf("%w: month %02d has no day %02d", domain.ErrInvalidArgument, month, day)
	}
	out := fmt.Sprintf("%02d.%02d", day, month)
	if len(parts) == 3 {
		year, err := strconv.Atoi(parts[2])
		if err != nil || year < 1900 || year > time.Now().Year() {
			return "", fmt.Errorf("%w: bad year %q", domain.ErrInvalidArgument, parts[2])
		}
		out = fmt.Sprintf("%s.%04d", out, year)
	}
	return out, nil
}

// DayMonthKey returns the DD.MM prefix used for today-matching.
func DayMonthKey(t time.Time) string {
	return fmt.Sprintf("%02d.%02d", t.Day(), int(t.Month()))
}

// Age returns the age turned this year, or 0 when the stored date has no
// year component.
func (b Birthday) Age(now time.Time) int {
	parts := strings.Split(b.Date, ".")
	if len(parts) != 3 {
		return 0
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil || year == 0 {
		return 0
	}
	return now.Year() - year
}

// daysIn is deliberately lenient for February: 29.02 is a storable
// birthday even though most years skip it.
func daysIn(month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	default:
		return 29
	}
}
