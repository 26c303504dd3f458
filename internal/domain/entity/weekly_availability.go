package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

var weekdayByStd = map[time.Weekday]Weekday{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// WeekdayOf returns the weekday of a calendar date
func WeekdayOf(date time.Time) Weekday {
	return weekdayByStd[date.Weekday()]
}

// ParseWeekday is case-insensitive
func ParseWeekday(s string) (Weekday, bool) {
	w := Weekday(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range weekdayByStd {
		if known == w {
			return w, true
		}
	}
	return "", false
}

// Order sorts Monday first.
func (w Weekday) Order() int {
	switch w {
	case Monday:
		return 0
	case Tuesday:
		return 1
	case Wednesday:
		return 2
	case Thursday:
		return 3
	case Friday:
		return 4
	case Saturday:
		return 5
	case Sunday:
		return 6
	}
	return 7
}

// WeeklyAvailability is a recurring window in which a doctor accepts appointments.
// Rows are replaced wholesale per doctor, so ID carries no meaning across updates.
type WeeklyAvailability struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index:idx_weekly_availability_doctor_weekday,priority:1" json:"doctor_id"`
	Weekday   Weekday   `gorm:"type:varchar(9);not null;index:idx_weekly_availability_doctor_weekday,priority:2" json:"weekday"`
	StartTime ClockTime `gorm:"type:time;not null" json:"start_time"`
	EndTime   ClockTime `gorm:"type:time;not null" json:"end_time"`
	Active    bool      `gorm:"not null" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (WeeklyAvailability) TableName() string {
	return "weekly_availability"
}

// HasValidRange checks startTime < endTime
func (w *WeeklyAvailability) HasValidRange() bool {
	return w.StartTime < w.EndTime
}
