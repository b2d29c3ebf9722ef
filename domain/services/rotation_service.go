package services

import (
	"errors"
	"fmt"
	"time"

	"fcbot/domain/entities"
)

// Rotation precondition errors. Both are user-fixable configuration states
// and callers render distinct text per kind.
var (
	// ErrNoBuffs indicates the guild has no buffs configured at all
	ErrNoBuffs = errors.New("no buffs configured")

	// ErrNoEnabledWeeks indicates no week schedule is currently enabled
	ErrNoEnabledWeeks = errors.New("no enabled weeks configured")
)

// DanglingBuffError indicates a week slot references a buff id that no
// longer exists in the guild's buff set. Distinct from the not-configured
// errors so admins can tell configuration drift from empty configuration.
type DanglingBuffError struct {
	BuffID string
}

func (e *DanglingBuffError) Error() string {
	return fmt.Sprintf("buff id %q referenced by the week schedule does not exist", e.BuffID)
}

// DailyBuff is a successful daily resolution: the matched buff plus the
// selected week and date for caption rendering.
type DailyBuff struct {
	Buff entities.Buff
	Week entities.Week
	Date time.Time
}

// Weekday returns the Sunday-origin weekday index of date (0=Sunday through
// 6=Saturday). Both the daily and weekly paths use this convention.
func Weekday(date time.Time) int {
	return int(date.Weekday())
}

// WeekNumber returns the ISO-8601 week-of-year of date
func WeekNumber(date time.Time) int {
	_, week := date.ISOWeek()
	return week
}

// ResolveWeek selects the week schedule for a date.
//
// Selection is modulus-over-enabled-subset: disabled weeks do not occupy an
// index, so toggling any week's enabled flag shifts the mapping of every
// subsequent week. That is the documented rotation policy, not an accident.
func ResolveWeek(config *entities.BuffConfig, date time.Time) (*entities.Week, error) {
	if len(config.Buffs) == 0 {
		return nil, ErrNoBuffs
	}
	enabled := config.EnabledWeeks()
	if len(enabled) == 0 {
		return nil, ErrNoEnabledWeeks
	}
	week := enabled[mod(WeekNumber(date), len(enabled))]
	return &week, nil
}

// ResolveDailyBuff selects the buff to display for a date
func ResolveDailyBuff(config *entities.BuffConfig, date time.Time) (*DailyBuff, error) {
	week, err := ResolveWeek(config, date)
	if err != nil {
		return nil, err
	}

	buffID := week.Days[Weekday(date)]
	buff := config.FindBuff(buffID)
	if buff == nil {
		return nil, &DanglingBuffError{BuffID: buffID}
	}

	return &DailyBuff{Buff: *buff, Week: *week, Date: date}, nil
}

// mod is the non-negative remainder, always in [0, n)
func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
