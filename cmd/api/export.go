package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const (
	csvFlushEvery = 200
	csvBufferSize = 32 * 1024
)

type csvStreamer struct {
	buf          *bufio.Writer
	csv          *csv.Writer
	pendingLines int
}

// newCSVStreamer sets the download headers and returns a writer that
// flushes to w every csvFlushEvery rows.
func newCSVStreamer(w http.ResponseWriter, name string) *csvStreamer {
	filename := fmt.Sprintf("%s-%s.csv", name, time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true
	return &csvStreamer{buf: buf, csv: writer}
}

func (s *csvStreamer) writeRow(row []string) error {
	if err := s.csv.Write(row); err != nil {
		return err
	}
	s.pendingLines++
	if s.pendingLines >= csvFlushEvery {
		return s.Flush()
	}
	return nil
}

func (s *csvStreamer) Flush() error {
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		return err
	}
	if err := s.buf.Flush(); err != nil {
		return err
	}
	s.pendingLines = 0
	return nil
}

// writeCSV streams header and one row per item. Headers are already sent
// when rows fail, so errors are only logged.
func writeCSV[T any](app *application, w http.ResponseWriter, r *http.Request, name string, header []string, items []T, row func(T) []string) {
	s := newCSVStreamer(w, name)

	if err := s.writeRow(header); err != nil {
		app.logger.Errorw("csv export failed", "path", r.URL.Path, "error", err)
		return
	}
	for _, item := range items {
		if err := s.writeRow(row(item)); err != nil {
			app.logger.Errorw("csv export failed", "path", r.URL.Path, "error", err)
			return
		}
	}
	if err := s.Flush(); err != nil {
		app.logger.Errorw("csv export failed", "path", r.URL.Path, "error", err)
	}
}

func csvInt(v int64) string { return strconv.FormatInt(v, 10) }

func csvMoney(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func csvTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func csvDate(t time.Time) string { return t.Format(time.DateOnly) }

func csvOptInt(v *int64) string {
	if v == nil {
		return ""
	}
	return csvInt(*v)
}

func csvOptString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
