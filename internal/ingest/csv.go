// Package ingest parses uploaded statements into transaction records.
//
// The CSV layout is a fixed external contract: a header row naming the
// columns "Data", "Instituição" and "Valor", one transaction per row. A
// single malformed row rejects the whole file; no partial ingestion.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"patrimonio/internal/common"
	"patrimonio/internal/model"
)

// Required CSV column names. These match the upload format of the original
// spreadsheets and are not configurable.
const (
	ColumnDate        = "Data"
	ColumnInstitution = "Instituição"
	ColumnAmount      = "Valor"
)

// DateLayout is the day/month/year format used by the Data column.
const DateLayout = "02/01/2006"

// ParseCSV reads a statement file and returns its transactions in input
// order. Rows are not deduplicated or merged; aggregation handles summation.
func ParseCSV(r io.Reader) ([]model.Transaction, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", common.ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var transactions []model.Transaction
	row := 0
	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", row+1, readErr)
		}
		row++

		txn, parseErr := parseRecord(record, cols, row)
		if parseErr != nil {
			return nil, parseErr
		}
		transactions = append(transactions, txn)
	}

	slog.Debug("parsed CSV statement", "rows", len(transactions))
	return transactions, nil
}

// columnIndexes locates the required columns within the header row.
type columnIndexes struct {
	date        int
	institution int
	amount      int
}

func resolveColumns(header []string) (columnIndexes, error) {
	cols := columnIndexes{date: -1, institution: -1, amount: -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case ColumnDate:
			cols.date = i
		case ColumnInstitution:
			cols.institution = i
		case ColumnAmount:
			cols.amount = i
		}
	}

	switch {
	case cols.date < 0:
		return cols, fmt.Errorf("%w: %s", common.ErrMissingColumn, ColumnDate)
	case cols.institution < 0:
		return cols, fmt.Errorf("%w: %s", common.ErrMissingColumn, ColumnInstitution)
	case cols.amount < 0:
		return cols, fmt.Errorf("%w: %s", common.ErrMissingColumn, ColumnAmount)
	}
	return cols, nil
}

func parseRecord(record []string, cols columnIndexes, row int) (model.Transaction, error) {
	max := cols.date
	if cols.institution > max {
		max = cols.institution
	}
	if cols.amount > max {
		max = cols.amount
	}
	if len(record) <= max {
		return model.Transaction{}, common.NewRowError(row, ColumnDate, strings.Join(record, ","), common.ErrInvalidDateFormat)
	}

	rawDate := strings.TrimSpace(record[cols.date])
	date, err := time.ParseInLocation(DateLayout, rawDate, time.UTC)
	if err != nil {
		return model.Transaction{}, common.NewRowError(row, ColumnDate, rawDate, common.ErrInvalidDateFormat)
	}

	rawAmount := strings.TrimSpace(record[cols.amount])
	amount, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil {
		return model.Transaction{}, common.NewRowError(row, ColumnAmount, rawAmount, common.ErrInvalidAmount)
	}

	return model.Transaction{
		Date:        model.Day(date),
		Institution: record[cols.institution],
		Amount:      amount,
	}, nil
}
