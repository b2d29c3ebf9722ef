package buffs

import (
	"fmt"

	"fcbot/domain/entities"
	"fcbot/domain/services"
)

// dateFormat renders dates the way the buff embeds caption them,
// e.g. "Monday 02 January 2006"
const dateFormat = "Monday 02 January 2006"

// dayNotice builds the single-buff notice for one date
func dayNotice(day *services.DailyBuff) *entities.Notice {
	return &entities.Notice{
		Title:        day.Buff.Text,
		ThumbnailURL: day.Buff.ImageURL,
		FooterText:   day.Date.Format(dateFormat),
	}
}

// weekNotice builds the seven-day overview notice for a week schedule.
// Slots referencing a missing buff render as "No Buff Found" rather than
// failing the whole overview.
func weekNotice(config *entities.BuffConfig, week *entities.Week, weekNumber int) *entities.Notice {
	notice := &entities.Notice{
		Title:      week.Title,
		FooterText: fmt.Sprintf("Week %d.", weekNumber),
	}
	for i, buffID := range week.Days {
		value := "No Buff Found"
		if buff := config.FindBuff(buffID); buff != nil {
			value = buff.Text
		}
		notice.Fields = append(notice.Fields, entities.NoticeField{
			Name:   entities.WeekdayNames[i],
			Value:  value,
			Inline: true,
		})
	}
	return notice
}
