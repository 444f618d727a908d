package models

import (
	"fmt"
	"math"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

const (
	StatusOK        = "OK"
	StatusNotOK     = "NOK"
	StatusPartialOK = "POK"
	StatusOther     = "N/A"
)

// TimestampLayout renders as "2015/05/13 11:10 UTC".
const TimestampLayout = "2006/01/02 15:04 MST"

// ElapsedUnknown is the elapsed time shown for regions without a numeric measure.
const ElapsedUnknown = "NaNh, NaNm, NaNs"

// Millis is a millisecond quantity that may be NaN. NaN encodes as JSON null.
type Millis float64

func (m Millis) MarshalJSON() ([]byte, error) {
	f := float64(m)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

func (m *Millis) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Millis(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*m = Millis(f)
	return nil
}

func (m Millis) IsNaN() bool {
	return math.IsNaN(float64(m))
}

// String formats the value the way the metrics payload expects it ("NaN" included).
func (m Millis) String() string {
	return strconv.FormatFloat(float64(m), 'f', -1, 64)
}

type RegionRecord struct {
	Node              string `json:"node"`
	Status            string `json:"status"`
	Timestamp         string `json:"timestamp"`
	TimestampMillis   int64  `json:"-"`
	ElapsedTime       string `json:"elapsedTime"`
	ElapsedTimeMillis Millis `json:"elapsedTimeMillis"`
	Authorized        bool   `json:"authorized"`
	Subscribed        bool   `json:"subscribed"`
}

func NewRegionRecord(name string) RegionRecord {
	return RegionRecord{
		Node:              name,
		ElapsedTime:       ElapsedUnknown,
		ElapsedTimeMillis: Millis(math.NaN()),
	}
}

// Observed reports whether the region has received at least one status.
func (r *RegionRecord) Observed() bool {
	return r.Status != ""
}

// FormatTimestamp converts epoch milliseconds into the dashboard time format.
func FormatTimestamp(millis int64) string {
	return time.UnixMilli(millis).UTC().Format(TimestampLayout)
}

// FormatElapsed renders milliseconds as "<H>h, <M>m, <S>s".
func FormatElapsed(millis float64) string {
	if math.IsNaN(millis) || math.IsInf(millis, 0) {
		return ElapsedUnknown
	}
	hours := math.Floor(millis / 3600000)
	minutes := math.Mod(math.Floor(millis/60000), 60)
	seconds := math.Mod(math.Floor(millis/1000), 60)
	return fmt.Sprintf("%.0fh, %.0fm, %.0fs", hours, minutes, seconds)
}

// StatusOrdinal maps a status to the numeric gauge value used by the metrics system.
// Statuses outside NOK/OK/POK yield -1.
func StatusOrdinal(status string) float64 {
	switch status {
	case StatusNotOK:
		return 0
	case StatusOK:
		return 1
	case StatusPartialOK:
		return 2
	default:
		return -1
	}
}
