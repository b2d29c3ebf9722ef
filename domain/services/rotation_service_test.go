package services

import (
	"errors"
	"testing"
	"time"

	"fcbot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allDays(id string) [7]string {
	return [7]string{id, id, id, id, id, id, id}
}

func rotationConfig() *entities.BuffConfig {
	return &entities.BuffConfig{
		GuildID: 123456789,
		Buffs: []entities.Buff{
			{ID: "a", Text: "Speed"},
			{ID: "b", Text: "Power"},
		},
		Weeks: []entities.Week{
			{IsEnabled: true, Title: "Week of Speed", Days: allDays("a")},
			{IsEnabled: true, Title: "Week of Power", Days: allDays("b")},
		},
	}
}

func TestWeekday_SundayOrigin(t *testing.T) {
	t.Parallel()

	knownSunday := time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)
	knownSaturday := time.Date(2024, 1, 6, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, Weekday(knownSunday))
	assert.Equal(t, 6, Weekday(knownSaturday))
}

func TestResolveDailyBuff_Preconditions(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		config  *entities.BuffConfig
		wantErr error
	}{
		{
			name:    "empty buffs",
			config:  &entities.BuffConfig{Weeks: []entities.Week{{IsEnabled: true}}},
			wantErr: ErrNoBuffs,
		},
		{
			name: "all weeks disabled",
			config: &entities.BuffConfig{
				Buffs: []entities.Buff{{ID: "a", Text: "Speed"}},
				Weeks: []entities.Week{
					{IsEnabled: false, Days: allDays("a")},
					{IsEnabled: false, Days: allDays("a")},
				},
			},
			wantErr: ErrNoEnabledWeeks,
		},
		{
			name: "no weeks at all",
			config: &entities.BuffConfig{
				Buffs: []entities.Buff{{ID: "a", Text: "Speed"}},
			},
			wantErr: ErrNoEnabledWeeks,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			daily, err := ResolveDailyBuff(tt.config, date)
			assert.Nil(t, daily)
			assert.ErrorIs(t, err, tt.wantErr)

			// The weekly path shares the same preconditions.
			week, err := ResolveWeek(tt.config, date)
			assert.Nil(t, week)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResolveDailyBuff_EvenOddISOWeekScenario(t *testing.T) {
	t.Parallel()

	config := rotationConfig()

	// 2024-01-08 is in ISO week 2 (even), 2024-01-07 in ISO week 1 (odd).
	evenWeekDate := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	oddWeekDate := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	require.Equal(t, 2, WeekNumber(evenWeekDate))
	require.Equal(t, 1, WeekNumber(oddWeekDate))

	daily, err := ResolveDailyBuff(config, evenWeekDate)
	require.NoError(t, err)
	assert.Equal(t, "Speed", daily.Buff.Text)

	daily, err = ResolveDailyBuff(config, oddWeekDate)
	require.NoError(t, err)
	assert.Equal(t, "Power", daily.Buff.Text)
}

func TestResolveDailyBuff_Idempotent(t *testing.T) {
	t.Parallel()

	config := rotationConfig()
	date := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

	first, err := ResolveDailyBuff(config, date)
	require.NoError(t, err)
	second, err := ResolveDailyBuff(config, date)
	require.NoError(t, err)

	assert.Equal(t, first.Buff, second.Buff)
	assert.Equal(t, first.Week, second.Week)
}

func TestResolveWeek_ModulusOverEnabledSubset(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC) // ISO week 2

	buffs := []entities.Buff{{ID: "a", Text: "Speed"}, {ID: "b", Text: "Power"}}
	speed := entities.Week{IsEnabled: true, Title: "Week of Speed", Days: allDays("a")}
	power := entities.Week{IsEnabled: true, Title: "Week of Power", Days: allDays("b")}
	disabled := entities.Week{IsEnabled: false, Title: "Disabled", Days: allDays("a")}

	// Disabled weeks occupy no index: moving them around the sequence does
	// not change which week resolves.
	base := &entities.BuffConfig{Buffs: buffs, Weeks: []entities.Week{speed, power}}
	reordered := &entities.BuffConfig{Buffs: buffs, Weeks: []entities.Week{disabled, speed, disabled, power}}

	baseWeek, err := ResolveWeek(base, date)
	require.NoError(t, err)
	reorderedWeek, err := ResolveWeek(reordered, date)
	require.NoError(t, err)
	assert.Equal(t, baseWeek.Title, reorderedWeek.Title)

	// Changing which weeks are enabled shrinks the modulus and shifts the
	// mapping. With only one enabled week every date maps to it.
	power.IsEnabled = false
	shifted := &entities.BuffConfig{Buffs: buffs, Weeks: []entities.Week{speed, power}}
	shiftedWeek, err := ResolveWeek(shifted, date)
	require.NoError(t, err)
	assert.Equal(t, "Week of Speed", shiftedWeek.Title)

	oddDate := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC) // ISO week 1
	shiftedWeek, err = ResolveWeek(shifted, oddDate)
	require.NoError(t, err)
	assert.Equal(t, "Week of Speed", shiftedWeek.Title)
}

func TestResolveDailyBuff_DanglingReference(t *testing.T) {
	t.Parallel()

	config := &entities.BuffConfig{
		Buffs: []entities.Buff{{ID: "a", Text: "Speed"}},
		Weeks: []entities.Week{{IsEnabled: true, Title: "Ghost Week", Days: allDays("ghost")}},
	}
	date := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	daily, err := ResolveDailyBuff(config, date)
	assert.Nil(t, daily)

	var dangling *DanglingBuffError
	require.True(t, errors.As(err, &dangling))
	assert.Equal(t, "ghost", dangling.BuffID)

	// The weekly path does not resolve individual slots and still succeeds.
	week, err := ResolveWeek(config, date)
	require.NoError(t, err)
	assert.Equal(t, "Ghost Week", week.Title)
}

func TestResolveDailyBuff_CarriesWeekAndDate(t *testing.T) {
	t.Parallel()

	config := rotationConfig()
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	daily, err := ResolveDailyBuff(config, date)
	require.NoError(t, err)
	assert.Equal(t, date, daily.Date)
	assert.Equal(t, "Week of Speed", daily.Week.Title)
}
