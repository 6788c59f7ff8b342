package acceptance

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// WritePointCSV writes the per-value comparison table.
func WritePointCSV(w io.Writer, rows []PointRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Reference", "Value", "Experimental", "Actual", "% Error"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Reference,
			r.Value,
			formatValue(r.Experimental),
			formatValue(r.Actual),
			strconv.FormatFloat(r.PercentError, 'f', 1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteScoreCSV writes the per-image score table.
func WriteScoreCSV(w io.Writer, rows []ScoreRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Reference", "Experimental", "Actual", "Difference"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Reference,
			strconv.Itoa(r.Experimental),
			strconv.Itoa(r.Actual),
			strconv.Itoa(r.Difference),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ValueSummary aggregates the percent errors of one value name.
type ValueSummary struct {
	Value     string
	Count     int
	MeanError float64
	StdDev    float64
}

// Summary aggregates a report.
type Summary struct {
	Values []ValueSummary

	Images      int
	ExactScores int
	// MeanScoreDifference is the mean absolute score difference per image.
	MeanScoreDifference float64
}

// ExactRate is the fraction of images whose score matched exactly.
func (s Summary) ExactRate() float64 {
	if s.Images == 0 {
		return 0
	}
	return float64(s.ExactScores) / float64(s.Images)
}

// Summarize computes per-value error statistics, sorted by value name, and
// score accuracy.
func Summarize(r *Report) Summary {
	byValue := map[string][]float64{}
	for _, p := range r.Points {
		byValue[p.Value] = append(byValue[p.Value], p.PercentError)
	}
	names := make([]string, 0, len(byValue))
	for name := range byValue {
		names = append(names, name)
	}
	sort.Strings(names)

	var s Summary
	for _, name := range names {
		errs := byValue[name]
		vs := ValueSummary{Value: name, Count: len(errs)}
		if len(errs) > 1 {
			vs.MeanError, vs.StdDev = stat.MeanStdDev(errs, nil)
		} else {
			vs.MeanError = stat.Mean(errs, nil)
		}
		s.Values = append(s.Values, vs)
	}

	diffs := make([]float64, len(r.Scores))
	for i, sc := range r.Scores {
		diffs[i] = float64(sc.Difference)
		if sc.Difference == 0 {
			s.ExactScores++
		}
	}
	s.Images = len(r.Scores)
	if len(diffs) > 0 {
		s.MeanScoreDifference = stat.Mean(diffs, nil)
	}
	return s
}

// WriteSummary prints a human-readable summary.
func WriteSummary(w io.Writer, s Summary) error {
	for _, v := range s.Values {
		if _, err := fmt.Fprintf(w, "%-24s n=%-5d mean %6.1f%%  sd %6.1f%%\n", v.Value, v.Count, v.MeanError, v.StdDev); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "scores: %d/%d exact (%.1f%%), mean difference %.2f\n",
		s.ExactScores, s.Images, 100*s.ExactRate(), s.MeanScoreDifference)
	return err
}
