// internal/analyze/analyze.go
package analyze

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/tamzrod/lpt-capture/internal/record"
)

// ErrTooFewSamples is returned when a capture has fewer than two records.
var ErrTooFewSamples = errors.New("analyze: not enough samples captured")

// Thresholds for the report warnings.
const (
	highVarianceRatio = 0.1 // stdev above 10% of mean period
	lowDiversity      = 16  // fewer unique data values than this
	shortCaptureUS    = 1_000_000
)

// ValueCount is one data value with its occurrence count.
type ValueCount struct {
	Value uint8
	Count int
}

// Report summarises a capture.
type Report struct {
	Samples int
	Skipped int // malformed lines

	// Timing, µs
	MeanPeriod   float64
	MedianPeriod float64
	StdevPeriod  float64
	MinPeriod    uint32
	MaxPeriod    uint32
	RateHz       float64
	DurationUS   uint32

	// Data bus
	MinData    uint8
	MaxData    uint8
	MeanData   float64
	Unique     int
	MostCommon []ValueCount // top 5

	Warnings []string
}

// Analyze reads a record stream and computes timing and data statistics.
// Comment lines are ignored; malformed lines are counted and skipped.
func Analyze(r io.Reader) (*Report, error) {
	var (
		ts   []uint32
		data []uint8
		rep  Report
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		f, err := record.Parse(sc.Text())
		if errors.Is(err, record.ErrComment) {
			continue
		}
		if err != nil {
			rep.Skipped++
			continue
		}
		ts = append(ts, f.Timestamp)
		data = append(data, f.Data)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("analyze: read: %w", err)
	}
	if len(ts) < 2 {
		return nil, ErrTooFewSamples
	}

	rep.Samples = len(ts)
	rep.timing(ts)
	rep.dataBus(data)
	rep.warn()

	return &rep, nil
}

func (rep *Report) timing(ts []uint32) {
	deltas := make([]float64, len(ts)-1)
	rep.MinPeriod = math.MaxUint32
	var sum float64

	for i := 1; i < len(ts); i++ {
		d := ts[i] - ts[i-1] // modular: tolerates one timer wrap
		deltas[i-1] = float64(d)
		sum += float64(d)
		if d < rep.MinPeriod {
			rep.MinPeriod = d
		}
		if d > rep.MaxPeriod {
			rep.MaxPeriod = d
		}
	}

	n := float64(len(deltas))
	rep.MeanPeriod = sum / n

	// sample stdev
	if len(deltas) > 1 {
		var sq float64
		for _, d := range deltas {
			sq += (d - rep.MeanPeriod) * (d - rep.MeanPeriod)
		}
		rep.StdevPeriod = math.Sqrt(sq / (n - 1))
	}

	sorted := append([]float64(nil), deltas...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		rep.MedianPeriod = sorted[mid]
	} else {
		rep.MedianPeriod = (sorted[mid-1] + sorted[mid]) / 2
	}

	if rep.MeanPeriod > 0 {
		rep.RateHz = 1_000_000 / rep.MeanPeriod
	}
	rep.DurationUS = ts[len(ts)-1] - ts[0]
}

func (rep *Report) dataBus(data []uint8) {
	var counts [256]int
	var sum float64

	rep.MinData = 0xFF
	for _, d := range data {
		counts[d]++
		sum += float64(d)
		if d < rep.MinData {
			rep.MinData = d
		}
		if d > rep.MaxData {
			rep.MaxData = d
		}
	}
	rep.MeanData = sum / float64(len(data))

	var all []ValueCount
	for v, c := range counts {
		if c > 0 {
			all = append(all, ValueCount{Value: uint8(v), Count: c})
		}
	}
	rep.Unique = len(all)

	// most common first, ties by value
	sort.SliceStable(all, func(i, j int) bool { return all[i].Count > all[j].Count })
	if len(all) > 5 {
		all = all[:5]
	}
	rep.MostCommon = all
}

func (rep *Report) warn() {
	if rep.StdevPeriod > rep.MeanPeriod*highVarianceRatio {
		rep.Warnings = append(rep.Warnings,
			"high timing variance: check for interrupts on the host and the STROBE connection")
	}
	if rep.Unique < lowDiversity {
		rep.Warnings = append(rep.Warnings,
			"low data diversity: may indicate a poor connection on D0-D7")
	}
	if rep.DurationUS < shortCaptureUS {
		rep.Warnings = append(rep.Warnings,
			"short capture: consider a longer capture for better analysis")
	}
}

// Print writes a human readable report.
func (rep *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Captured %d samples", rep.Samples)
	if rep.Skipped > 0 {
		fmt.Fprintf(w, " (%d malformed lines skipped)", rep.Skipped)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Timing Analysis ===")
	fmt.Fprintf(w, "Average period: %.1f us\n", rep.MeanPeriod)
	fmt.Fprintf(w, "Median period:  %.1f us\n", rep.MedianPeriod)
	fmt.Fprintf(w, "Std deviation:  %.1f us\n", rep.StdevPeriod)
	fmt.Fprintf(w, "Min period:     %d us\n", rep.MinPeriod)
	fmt.Fprintf(w, "Max period:     %d us\n", rep.MaxPeriod)
	fmt.Fprintf(w, "Event rate:     %.0f Hz (%.1f kHz)\n", rep.RateHz, rep.RateHz/1000)
	fmt.Fprintf(w, "Duration:       %.2f s\n", float64(rep.DurationUS)/1_000_000)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Data Analysis ===")
	fmt.Fprintf(w, "Min value:  0x%02X (%d)\n", rep.MinData, rep.MinData)
	fmt.Fprintf(w, "Max value:  0x%02X (%d)\n", rep.MaxData, rep.MaxData)
	fmt.Fprintf(w, "Mean value: %.1f\n", rep.MeanData)
	fmt.Fprintf(w, "Unique values: %d\n", rep.Unique)
	fmt.Fprintln(w, "Most common values:")
	for _, vc := range rep.MostCommon {
		pct := float64(vc.Count) / float64(rep.Samples) * 100
		fmt.Fprintf(w, "  0x%02X: %d times (%.1f%%)\n", vc.Value, vc.Count, pct)
	}

	if len(rep.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "=== Warnings ===")
		for _, msg := range rep.Warnings {
			fmt.Fprintf(w, "! %s\n", msg)
		}
	}
}
