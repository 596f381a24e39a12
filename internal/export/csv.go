// Package export re-serializes scored tenants as CSV files and spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Veraticus/the-rent-must-flow/internal/common"
	"github.com/Veraticus/the-rent-must-flow/internal/model"
	"github.com/Veraticus/the-rent-must-flow/internal/query"
)

// TopLimit is the number of tenants in a top export.
const TopLimit = 20

// Kind selects which tenants an export contains.
type Kind string

// Export kinds.
const (
	KindTop      Kind = "top"
	KindFiltered Kind = "filtered"
	KindAll      Kind = "all"
)

// Kinds lists every export kind in the order dashboards offer them.
var Kinds = []Kind{KindTop, KindFiltered, KindAll}

// ParseKind resolves an export kind by name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want top, filtered or all)", common.ErrUnknownExport, s)
}

// FileName returns the dated file name for an export taken at now.
func (k Kind) FileName(now time.Time) string {
	date := now.Format("20060102")
	switch k {
	case KindTop:
		return fmt.Sprintf("top_%d_tenants_%s.csv", TopLimit, date)
	case KindFiltered:
		return fmt.Sprintf("filtered_tenants_%s.csv", date)
	default:
		return fmt.Sprintf("complete_tenant_analysis_%s.csv", date)
	}
}

// Select picks the rows an export of kind k contains.
// Top and filtered exports draw from the filtered view; all ignores it.
func (k Kind) Select(filtered, all []model.ScoredTenant) []model.ScoredTenant {
	switch k {
	case KindTop:
		return query.Top(filtered, TopLimit)
	case KindFiltered:
		return filtered
	default:
		return all
	}
}

// Header returns the dataset's original header followed by the derived columns.
func Header(dataset *model.Dataset) []string {
	header := make([]string, 0, len(dataset.Header)+len(model.DerivedColumns))
	header = append(header, dataset.Header...)
	return append(header, model.DerivedColumns...)
}

// FormatScore renders a score the way every export writes it.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}

// Records builds one CSV record per tenant: the uploaded fields, then
// score, category and age group.
func Records(dataset *model.Dataset, rows []model.ScoredTenant) [][]string {
	records := make([][]string, 0, len(rows))
	for i := range rows {
		t := &rows[i]
		raw := dataset.Rows[t.Index]

		record := make([]string, 0, len(raw)+len(model.DerivedColumns))
		record = append(record, raw...)
		record = append(record, FormatScore(t.Score), string(t.Category), string(t.AgeGroup))
		records = append(records, record)
	}
	return records
}

// WriteCSV writes rows with the export header to w.
func WriteCSV(w io.Writer, dataset *model.Dataset, rows []model.ScoredTenant) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(dataset)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.WriteAll(Records(dataset, rows)); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return nil
}

// FileExporter writes exports into a directory.
type FileExporter struct {
	now func() time.Time
	dir string
}

// NewFileExporter creates an exporter writing into dir.
func NewFileExporter(dir string) *FileExporter {
	return &FileExporter{dir: dir, now: time.Now}
}

// Export writes one export file and returns its path.
func (e *FileExporter) Export(kind Kind, dataset *model.Dataset, filtered, all []model.ScoredTenant) (string, error) {
	if err := os.MkdirAll(e.dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	rows := kind.Select(filtered, all)
	path := filepath.Join(e.dir, kind.FileName(e.now()))

	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := WriteCSV(f, dataset, rows); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}

	slog.Info("Exported tenants", "kind", kind, "rows", len(rows), "path", path)
	return path, nil
}

// ExportAll writes every kind of export and returns the paths in Kinds order.
func (e *FileExporter) ExportAll(dataset *model.Dataset, filtered, all []model.ScoredTenant) ([]string, error) {
	paths := make([]string, 0, len(Kinds))
	for _, kind := range Kinds {
		path, err := e.Export(kind, dataset, filtered, all)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
