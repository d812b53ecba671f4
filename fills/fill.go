package fills

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Column names of the broker export.
const (
	ColDateTime         = "DateTime"
	ColSymbol           = "Symbol"
	ColBuySell          = "BuySell"
	ColQuantity         = "Quantity"
	ColFillPrice        = "FillPrice"
	ColOrderType        = "OrderType"
	ColOpenClose        = "OpenClose"
	ColPositionQuantity = "PositionQuantity"
)

// TimeLayout is the broker-local timestamp format of the DateTime column.
const TimeLayout = "2006-01-02 15:04:05"

type Side string

const (
	Buy  Side = "Buy"
	Sell Side = "Sell"
)

// OpenClose tells whether a fill adds to or reduces a position.
type OpenClose string

const (
	Open  OpenClose = "Open"
	Close OpenClose = "Close"
)

// Fill is one execution row. Unknown enum values are left empty.
type Fill struct {
	Timestamp        string
	Symbol           string
	Side             Side
	Quantity         float64
	Price            float64
	PositionQuantity float64
	OpenClose        OpenClose
	OrderType        string
}

// FromRow builds a Fill from a parsed row. Missing or unparseable numbers
// become 0; it never fails.
func FromRow(r Row) Fill {
	return Fill{
		Timestamp:        r[ColDateTime],
		Symbol:           r[ColSymbol],
		Side:             ParseSide(r[ColBuySell]),
		Quantity:         FloatOr(r[ColQuantity], 0),
		Price:            FloatOr(r[ColFillPrice], 0),
		PositionQuantity: FloatOr(r[ColPositionQuantity], 0),
		OpenClose:        ParseOpenClose(r[ColOpenClose]),
		OrderType:        r[ColOrderType],
	}
}

// FloatOr parses s as a float and returns def when s is empty, malformed or
// not a finite number.
func FloatOr(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

func ParseSide(s string) Side {
	switch {
	case strings.EqualFold(strings.TrimSpace(s), string(Buy)):
		return Buy
	case strings.EqualFold(strings.TrimSpace(s), string(Sell)):
		return Sell
	}
	return ""
}

func ParseOpenClose(s string) OpenClose {
	switch {
	case strings.EqualFold(strings.TrimSpace(s), string(Open)):
		return Open
	case strings.EqualFold(strings.TrimSpace(s), string(Close)):
		return Close
	}
	return ""
}

// Time parses the timestamp in loc. It returns the zero time when the
// timestamp is empty or malformed.
func (f Fill) Time(loc *time.Location) time.Time {
	t, err := time.ParseInLocation(TimeLayout, strings.TrimSpace(f.Timestamp), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Date returns the YYYY-MM-DD part of the timestamp, or "".
func (f Fill) Date() string {
	date, _, ok := strings.Cut(strings.TrimSpace(f.Timestamp), " ")
	if !ok || len(date) != len("2006-01-02") {
		return ""
	}
	return date
}

// Hour returns the HH part of the timestamp, or "".
func (f Fill) Hour() string {
	_, clock, ok := strings.Cut(strings.TrimSpace(f.Timestamp), " ")
	if !ok {
		return ""
	}
	hour, _, ok := strings.Cut(clock, ":")
	if !ok {
		return ""
	}
	return hour
}
