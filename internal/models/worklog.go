package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// WorkLog is the single persisted entity: one row per logged task.
// InsertedAt is assigned by the server on create and never updated.
type WorkLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Task          string    `gorm:"not null;index" json:"task"`
	Description   string    `gorm:"not null;default:''" json:"description"`
	Date          Date      `json:"date"`
	IsHighlighted bool      `gorm:"not null;default:false" json:"is_highlighted"`
	InsertedAt    time.Time `gorm:"not null" json:"inserted_at"`
}

func (WorkLog) TableName() string {
	return "worklogs"
}

const dateLayout = "2006-01-02"

// Date is a calendar date. On the wire it is "YYYY-MM-DD"; a full RFC 3339
// date-time is also accepted on input and truncated to the day. The zero
// value means "not supplied".
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func Today() Date {
	return NewDate(time.Now())
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("date must be a string in YYYY-MM-DD format")
	}
	s = s[1 : len(s)-1]

	if t, err := time.Parse(dateLayout, s); err == nil {
		*d = NewDate(t)
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		*d = NewDate(t)
		return nil
	}
	return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
}

func (Date) GormDataType() string {
	return "datetime"
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *Date) Scan(v interface{}) error {
	switch t := v.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = NewDate(t)
	case string:
		return d.scanString(t)
	case []byte:
		return d.scanString(string(t))
	default:
		return fmt.Errorf("cannot scan %T into Date", v)
	}
	return nil
}

func (d *Date) scanString(s string) error {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05.999999999-07:00", dateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = NewDate(t)
			return nil
		}
	}
	return fmt.Errorf("cannot scan %q into Date", s)
}
