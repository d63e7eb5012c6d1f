package endpoint

import (
	"fmt"
	"time"
)

// DateLayout is the accepted date format for start/end parameters.
const DateLayout = "2006-01-02"

// DateToTimestamp converts a YYYY-MM-DD date to Unix seconds at local midnight.
func DateToTimestamp(s string) (int64, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return 0, fmt.Errorf("expected date as %s: %w", DateLayout, err)
	}
	return t.Unix(), nil
}

// TimestampToDate renders Unix seconds as a local YYYY-MM-DD date.
func TimestampToDate(ts int64) string {
	return time.Unix(ts, 0).In(time.Local).Format(DateLayout)
}

func dateToTimestamp(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("expected string, got %T", v)
	}
	return DateToTimestamp(s)
}
