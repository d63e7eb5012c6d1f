package parser

import "github.com/komsit37/yhoo/pkg/yhoo/errs"

// Interval is a chart bucket size.
type Interval string

const (
	OneMinute      Interval = "1m"
	TwoMinutes     Interval = "2m"
	FiveMinutes    Interval = "5m"
	FifteenMinutes Interval = "15m"
	ThirtyMinutes  Interval = "30m"
	OneHour        Interval = "1h"
	OneDay         Interval = "1d"
	FiveDays       Interval = "5d"
	OneWeek        Interval = "1w"
	OneMonth       Interval = "1mo"
	ThreeMonths    Interval = "3mo"
)

// Intervals lists every known interval in ascending size.
var Intervals = []Interval{
	OneMinute, TwoMinutes, FiveMinutes, FifteenMinutes, ThirtyMinutes,
	OneHour, OneDay, FiveDays, OneWeek, OneMonth, ThreeMonths,
}

// ParseInterval maps a wire string to an Interval.
func ParseInterval(s string) (Interval, error) {
	for _, iv := range Intervals {
		if string(iv) == s {
			return iv, nil
		}
	}
	return "", &errs.UnknownEnumValueError{Enum: "interval", Value: s}
}

// Range is a chart lookback window. RangeNone means no range was requested.
type Range string

const (
	RangeNone        Range = ""
	RangeOneDay      Range = "1d"
	RangeFiveDays    Range = "5d"
	RangeOneMonth    Range = "1mo"
	RangeThreeMonths Range = "3mo"
	RangeSixMonths   Range = "6mo"
	RangeOneYear     Range = "1y"
	RangeTwoYears    Range = "2y"
	RangeFiveYears   Range = "5y"
	RangeTenYears    Range = "10y"
	RangeYTD         Range = "ytd"
	RangeMax         Range = "max"
)

// Ranges lists every requestable range; RangeNone is excluded.
var Ranges = []Range{
	RangeOneDay, RangeFiveDays, RangeOneMonth, RangeThreeMonths, RangeSixMonths,
	RangeOneYear, RangeTwoYears, RangeFiveYears, RangeTenYears, RangeYTD, RangeMax,
}

// ParseRange maps a wire string to a Range. The empty string is RangeNone.
func ParseRange(s string) (Range, error) {
	if s == "" {
		return RangeNone, nil
	}
	for _, r := range Ranges {
		if string(r) == s {
			return r, nil
		}
	}
	return "", &errs.UnknownEnumValueError{Enum: "range", Value: s}
}

// ContractType tags an options record.
type ContractType string

const (
	Call ContractType = "CALL"
	Put  ContractType = "PUT"
)
