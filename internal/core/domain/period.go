package domain

import (
	"errors"
	"fmt"
	"time"
)

// Period addresses one accounting month.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// PeriodOf returns the period t falls into.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// Validate checks the month range and a sane year.
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("month %d out of range 1..12", p.Month)
	}
	if p.Year < 2000 || p.Year > 2100 {
		return errors.New("year out of range")
	}
	return nil
}

// Start is the first instant of the period in UTC.
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}
