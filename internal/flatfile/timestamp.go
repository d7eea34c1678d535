package flatfile

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/mockstore/pkg/types"
)

// displayLayout renders stored timestamps, e.g. 2024-01-15T10:30:00.000Z.
const displayLayout = "2006-01-02T15:04:05.000Z07:00"

var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func isTimestamp(attr string) bool {
	return attr == types.AttrCreated || attr == types.AttrUpdated
}

// rawTime is the stored form: seconds since epoch, millisecond precision.
func rawTime(t time.Time) types.Value {
	return types.Number(float64(t.UnixMilli()) / 1000)
}

// parseTimestamp converts a caller-supplied timestamp to the stored form.
// Numbers are kept as they are; strings may be ISO-8601 (with or without
// zone and fraction) or a decimal number of seconds.
func parseTimestamp(attr string, v types.Value) (types.Value, error) {
	if _, ok := v.AsNumber(); ok {
		return v, nil
	}
	s, ok := v.AsString()
	if !ok {
		return types.Value{}, invalidInput("%s must be a timestamp, got %s", attr, v.Kind())
	}
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return types.Number(f), nil
	}
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return rawTime(t), nil
		}
	}
	return types.Value{}, invalidInput("%s: cannot parse %q as a timestamp", attr, s)
}

// displayTimestamp renders a stored number; anything else passes through.
func displayTimestamp(v types.Value) types.Value {
	f, ok := v.AsNumber()
	if !ok {
		return v
	}
	ms := int64(math.Round(f * 1000))
	return types.String(time.UnixMilli(ms).UTC().Format(displayLayout))
}
