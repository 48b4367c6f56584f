package dataset

import (
	"math"
	"sort"
)

// HistogramBins is the number of equal-width sentiment bins over [-1, 1].
const HistogramBins = 20

// neutralBand mirrors the renderer's neutral sentiment band.
const neutralBand = 0.05

type CategoryStat struct {
	Name          string
	Count         int
	MeanSentiment float64
}

type Summary struct {
	Total      int
	Positive   int
	Negative   int
	Neutral    int
	Categories []CategoryStat
	Histogram  [HistogramBins]int
	PerMonth   [12]int
}

// Summarize tallies records by category, sentiment band, sentiment bin and
// publish month. Categories are ordered by count, then name.
func Summarize(rs []Record) Summary {
	var s Summary
	type acc struct {
		n   int
		sum float64
	}
	cats := make(map[string]*acc)

	for _, r := range rs {
		s.Total++
		switch {
		case math.Abs(r.Sentiment) < neutralBand:
			s.Neutral++
		case r.Sentiment < 0:
			s.Negative++
		default:
			s.Positive++
		}

		bin := int((r.Sentiment + 1) / 2 * HistogramBins)
		if bin < 0 {
			bin = 0
		}
		if bin >= HistogramBins {
			bin = HistogramBins - 1
		}
		s.Histogram[bin]++
		s.PerMonth[int(r.Published.Month())-1]++

		a, ok := cats[r.Category]
		if !ok {
			a = &acc{}
			cats[r.Category] = a
		}
		a.n++
		a.sum += r.Sentiment
	}

	for name, a := range cats {
		s.Categories = append(s.Categories, CategoryStat{
			Name:          name,
			Count:         a.n,
			MeanSentiment: a.sum / float64(a.n),
		})
	}
	sort.Slice(s.Categories, func(i, j int) bool {
		if s.Categories[i].Count != s.Categories[j].Count {
			return s.Categories[i].Count > s.Categories[j].Count
		}
		return s.Categories[i].Name < s.Categories[j].Name
	})
	return s
}

// HistogramSeries returns the sentiment histogram as plot-ready floats.
func (s Summary) HistogramSeries() []float64 {
	out := make([]float64, HistogramBins)
	for i, n := range s.Histogram {
		out[i] = float64(n)
	}
	return out
}
