package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/san-kum/newsflow/internal/engine"
)

const FramesFile = "frames.csv"

var frameHeader = []string{"frame", "progress", "segments", "time_offset", "curves", "points", "truncated"}

// WriteFrames writes one csv row per rendered frame.
func WriteFrames(w io.Writer, frames []engine.FrameStats) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(frameHeader); err != nil {
		return err
	}
	for _, f := range frames {
		row := []string{
			strconv.Itoa(f.Frame),
			strconv.FormatFloat(f.Progress, 'f', 6, 64),
			strconv.Itoa(f.Segments),
			strconv.FormatFloat(f.TimeOffset, 'f', 6, 64),
			strconv.Itoa(f.Curves),
			strconv.Itoa(f.Points),
			strconv.Itoa(f.Truncated),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FramesArtifact wraps WriteFrames for Save.
func FramesArtifact(frames []engine.FrameStats) Artifact {
	return Artifact{Name: FramesFile, Write: func(w io.Writer) error { return WriteFrames(w, frames) }}
}

func (s *Store) LoadFrames(runID string) ([]engine.FrameStats, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, FramesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(frameHeader)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []engine.FrameStats{}, nil
	}

	frames := make([]engine.FrameStats, 0, len(records)-1)
	for i, rec := range records[1:] {
		var f engine.FrameStats
		var errs [7]error
		f.Frame, errs[0] = strconv.Atoi(rec[0])
		f.Progress, errs[1] = strconv.ParseFloat(rec[1], 64)
		f.Segments, errs[2] = strconv.Atoi(rec[2])
		f.TimeOffset, errs[3] = strconv.ParseFloat(rec[3], 64)
		f.Curves, errs[4] = strconv.Atoi(rec[4])
		f.Points, errs[5] = strconv.Atoi(rec[5])
		f.Truncated, errs[6] = strconv.Atoi(rec[6])
		for _, e := range errs {
			if e != nil {
				return nil, fmt.Errorf("%s row %d: %w", FramesFile, i+1, e)
			}
		}
		frames = append(frames, f)
	}
	return frames, nil
}
