// Package ingest parses uploaded tenant CSV files.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Veraticus/the-rent-must-flow/internal/common"
	"github.com/Veraticus/the-rent-must-flow/internal/model"
)

const byteOrderMark = "\ufeff"

// FieldError describes a cell that could not be turned into a tenant attribute.
type FieldError struct {
	Err    error
	Column string
	Value  string
	Reason string
	Line   int
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("line %d: column %q: %s (got %q)", e.Line, e.Column, e.Reason, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Parser implements tenant CSV parsing.
type Parser struct{}

// NewParser creates a new CSV parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a tenant CSV. Any malformed row fails the whole upload.
func (p *Parser) Parse(ctx context.Context, reader io.Reader) (*model.Dataset, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: file is empty", common.ErrNoRecords)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read header: %w", common.ErrInvalidField, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], byteOrderMark)
	}

	index := mapHeaders(header)
	if missing := missingColumns(model.RequiredColumns, index); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingColumns, strings.Join(missing, ", "))
	}

	dataset := &model.Dataset{Header: header}
	damageCol := index[columnKey(model.ColDamageToProperty)]

	for {
		if len(dataset.Rows)%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrInvalidField, err)
		}

		line, _ := r.FieldPos(0)
		tenant, err := parseTenant(record, index, line)
		if err != nil {
			return nil, err
		}

		row := make([]string, len(record))
		copy(row, record)
		if strings.TrimSpace(row[damageCol]) == "" {
			row[damageCol] = model.NotAvailable
		}

		dataset.Rows = append(dataset.Rows, row)
		dataset.Tenants = append(dataset.Tenants, tenant)
	}

	if dataset.Len() == 0 {
		return nil, fmt.Errorf("%w: file has a header but no rows", common.ErrNoRecords)
	}

	slog.Debug("Parsed tenant file",
		"tenants", dataset.Len(),
		"columns", len(header))

	return dataset, nil
}

// ParseFile opens and parses the tenant CSV at path.
func (p *Parser) ParseFile(ctx context.Context, path string) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewUserError("unable to open tenant file", err)
	}
	defer f.Close()

	return p.Parse(ctx, f)
}

func columnKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func mapHeaders(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		key := columnKey(name)
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}
	return index
}

func missingColumns(required []string, index map[string]int) []string {
	var missing []string
	for _, name := range required {
		if _, ok := index[columnKey(name)]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// rowReader extracts typed values from one record, remembering the first failure.
type rowReader struct {
	err    error
	index  map[string]int
	record []string
	line   int
}

func (rr *rowReader) text(column string) string {
	pos := rr.index[columnKey(column)]
	if pos >= len(rr.record) {
		return ""
	}
	return strings.TrimSpace(rr.record[pos])
}

func (rr *rowReader) fail(column, value, reason string, err error) {
	if rr.err != nil {
		return
	}
	rr.err = &FieldError{
		Line:   rr.line,
		Column: column,
		Value:  value,
		Reason: reason,
		Err:    err,
	}
}

func (rr *rowReader) float(column string) float64 {
	raw := rr.text(column)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		rr.fail(column, raw, "not a number", common.ErrInvalidField)
		return 0
	}
	if v < 0 {
		rr.fail(column, raw, "must not be negative", common.ErrOutOfRange)
		return 0
	}
	return v
}

func (rr *rowReader) integer(column string) int {
	raw := rr.text(column)
	if v, err := strconv.Atoi(raw); err == nil {
		if v < 0 {
			rr.fail(column, raw, "must not be negative", common.ErrOutOfRange)
			return 0
		}
		return v
	}

	// Spreadsheet exports often write whole numbers as "12.0".
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != float64(int(f)) {
		rr.fail(column, raw, "not a whole number", common.ErrInvalidField)
		return 0
	}
	if f < 0 {
		rr.fail(column, raw, "must not be negative", common.ErrOutOfRange)
		return 0
	}
	return int(f)
}

func parseTenant(record []string, index map[string]int, line int) (model.Tenant, error) {
	rr := &rowReader{record: record, index: index, line: line}

	t := model.Tenant{
		Name:             rr.text(model.ColName),
		Age:              rr.integer(model.ColAge),
		EmploymentStatus: rr.text(model.ColEmploymentStatus),
		EmploymentYears:  rr.float(model.ColEmploymentYears),
		AnnualIncome:     rr.float(model.ColAnnualIncome),
		MonthlySalary:    rr.float(model.ColMonthlySalary),
		CreditScore:      rr.integer(model.ColCreditScore),
		RentPaidOnTime:   rr.text(model.ColRentPaidOnTime),
		LatePayments:     rr.integer(model.ColLatePayments),
		DamageToProperty: rr.text(model.ColDamageToProperty),
		NoiseComplaints:  rr.integer(model.ColNoiseComplaints),
		TenancyMonths:    rr.integer(model.ColTenancyMonths),
		EvictionNotice:   rr.text(model.ColEvictionNotice),
		RoomCleanliness:  rr.text(model.ColRoomCleanliness),
		ReferenceScore:   rr.float(model.ColReferenceScore),
		SmokingStatus:    rr.text(model.ColSmokingStatus),
		PetOwner:         rr.text(model.ColPetOwner),
	}
	if rr.err != nil {
		return model.Tenant{}, rr.err
	}

	if t.ReferenceScore < 1 || t.ReferenceScore > 10 {
		raw := rr.text(model.ColReferenceScore)
		return model.Tenant{}, &FieldError{
			Line:   line,
			Column: model.ColReferenceScore,
			Value:  raw,
			Reason: "must be between 1 and 10",
			Err:    common.ErrOutOfRange,
		}
	}

	if t.DamageToProperty == "" {
		t.DamageToProperty = model.NotAvailable
	}

	return t, nil
}
