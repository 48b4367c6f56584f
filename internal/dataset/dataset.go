// Package dataset loads headline records grouped by year and month and selects
// the slice of them a visualization run draws.
//
// The on-disk format is JSON keyed by year and then by 1-based month:
//
//	{"2001": {"1": [{"publish_date": "2001-01-03", "category": "Crime",
//	                 "news_sentiment": -0.62, "headline_text": "..."}]}}
//
// A year may also map directly to a list of headlines; such lists are grouped
// by publish month while decoding.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/newsflow/internal/flow"
)

// DateLayout is the publish_date format.
const DateLayout = "2006-01-02"

// Record is one classified headline.
type Record struct {
	Category  string
	Sentiment float64
	Published time.Time
	Headline  string
}

// Flow returns the view of r used by the simulation.
func (r Record) Flow() flow.Record {
	return flow.Record{Category: r.Category, Sentiment: r.Sentiment, Published: r.Published}
}

// Dataset maps year -> 1-based month -> records.
type Dataset map[string]map[string][]Record

type headline struct {
	PublishDate string  `json:"publish_date"`
	Category    string  `json:"category"`
	Sentiment   float64 `json:"news_sentiment"`
	Text        string  `json:"headline_text"`
}

func Load(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ds, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

func Decode(r io.Reader) (Dataset, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}

	ds := make(Dataset, len(raw))
	for year, body := range raw {
		body = bytes.TrimSpace(body)
		if len(body) > 0 && body[0] == '[' {
			var list []headline
			if err := json.Unmarshal(body, &list); err != nil {
				return nil, fmt.Errorf("%w: year %s: %v", ErrMalformedData, year, err)
			}
			recs, err := convert(year, "", list)
			if err != nil {
				return nil, err
			}
			ds[year] = groupByMonth(recs)
			continue
		}

		var months map[string][]headline
		if err := json.Unmarshal(body, &months); err != nil {
			return nil, fmt.Errorf("%w: year %s: %v", ErrMalformedData, year, err)
		}
		ds[year] = make(map[string][]Record, len(months))
		for month, list := range months {
			recs, err := convert(year, month, list)
			if err != nil {
				return nil, err
			}
			ds[year][month] = recs
		}
	}
	return ds, nil
}

func convert(year, month string, list []headline) ([]Record, error) {
	recs := make([]Record, 0, len(list))
	for i, h := range list {
		t, err := time.Parse(DateLayout, h.PublishDate)
		if err != nil {
			return nil, fmt.Errorf("%w: year %s month %s item %d: %q", ErrMalformedDate, year, month, i, h.PublishDate)
		}
		recs = append(recs, Record{
			Category:  h.Category,
			Sentiment: h.Sentiment,
			Published: t,
			Headline:  h.Text,
		})
	}
	return recs, nil
}

func groupByMonth(recs []Record) map[string][]Record {
	out := make(map[string][]Record)
	for _, r := range recs {
		key := strconv.Itoa(int(r.Published.Month()))
		out[key] = append(out[key], r)
	}
	return out
}

// Encode writes ds in the year -> month layout.
func (ds Dataset) Encode(w io.Writer) error {
	out := make(map[string]map[string][]headline, len(ds))
	for year, months := range ds {
		out[year] = make(map[string][]headline, len(months))
		for month, recs := range months {
			list := make([]headline, len(recs))
			for i, r := range recs {
				list[i] = headline{
					PublishDate: r.Published.Format(DateLayout),
					Category:    r.Category,
					Sentiment:   r.Sentiment,
					Text:        r.Headline,
				}
			}
			out[year][month] = list
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Years lists the years present, ascending.
func (ds Dataset) Years() []string {
	years := make([]string, 0, len(ds))
	for y := range ds {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

// Select flattens one year, keeps records whose zero-based publish month lies
// in [startMonth, endMonth] and orders them by publish time. Records with
// equal timestamps keep their file order.
func Select(ds Dataset, year string, startMonth, endMonth int) ([]Record, error) {
	if startMonth < 0 || endMonth > 11 || startMonth > endMonth {
		return nil, fmt.Errorf("%w: %d..%d", ErrInvalidRange, startMonth, endMonth)
	}
	months, ok := ds[year]
	if !ok {
		return nil, fmt.Errorf("%w: year %s", ErrNoData, year)
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return monthKey(keys[i]) < monthKey(keys[j]) })

	var out []Record
	for _, k := range keys {
		for _, r := range months[k] {
			m := int(r.Published.Month()) - 1
			if m >= startMonth && m <= endMonth {
				out = append(out, r)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Published.Before(out[j].Published) })
	return out, nil
}

func monthKey(k string) int {
	n, err := strconv.Atoi(k)
	if err != nil {
		return 1 << 30
	}
	return n
}

// FlowRecords converts records into the simulation view.
func FlowRecords(rs []Record) []flow.Record {
	out := make([]flow.Record, len(rs))
	for i, r := range rs {
		out[i] = r.Flow()
	}
	return out
}
