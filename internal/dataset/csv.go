package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"memberpulse/internal/config"
	"memberpulse/internal/errors"
)

// ReaderOptions configures CSV reading behavior.
type ReaderOptions struct {
	// MaxRows rejects datasets above this many data rows. Zero means the
	// default ceiling from config.
	MaxRows int
}

// Reader parses the source CSV exports into typed records.
type Reader struct {
	logger  *slog.Logger
	maxRows int
}

// NewReader creates a new dataset reader.
func NewReader(logger *slog.Logger, opts ReaderOptions) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	maxRows := opts.MaxRows
	if maxRows <= 0 {
		maxRows = config.DefaultMaxRowsPerDataset
	}
	return &Reader{logger: logger, maxRows: maxRows}
}

// ReadAccounts parses the membership accounts export.
func (r *Reader) ReadAccounts(src io.Reader) ([]AccountRecord, error) {
	rows, header, err := r.readAll(src, "accounts", []string{config.HeaderAccountID, config.HeaderEmail})
	if err != nil {
		return nil, err
	}

	records := make([]AccountRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, AccountRecord{
			AccountID:   header.get(row, config.HeaderAccountID),
			Email:       header.get(row, config.HeaderEmail),
			Cancel:      header.get(row, config.HeaderCancel),
			JoinDate:    header.get(row, config.HeaderJoinDate),
			RenewalDate: header.get(row, config.HeaderRenewalDate),
		})
	}
	return records, nil
}

// ReadFinancial parses the financial transactions export.
func (r *Reader) ReadFinancial(src io.Reader) ([]FinancialRecord, error) {
	rows, header, err := r.readAll(src, "financial", []string{config.HeaderDate, config.HeaderAccountID})
	if err != nil {
		return nil, err
	}

	records := make([]FinancialRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, FinancialRecord{
			Date:         header.get(row, config.HeaderDate),
			AccountID:    header.get(row, config.HeaderAccountID),
			DiscountCode: header.get(row, config.HeaderDiscountCode),
		})
	}
	return records, nil
}

// ReadJotform parses the lead-form submissions export.
func (r *Reader) ReadJotform(src io.Reader) ([]JotformRecord, error) {
	rows, header, err := r.readAll(src, "jotform", []string{config.HeaderSubmission, config.HeaderJotformEmail})
	if err != nil {
		return nil, err
	}

	records := make([]JotformRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, JotformRecord{
			SubmissionDate: header.get(row, config.HeaderSubmission),
			Email:          header.get(row, config.HeaderJotformEmail),
		})
	}
	return records, nil
}

// LoadAccountsFile reads the accounts export from disk.
func (r *Reader) LoadAccountsFile(path string) ([]AccountRecord, error) {
	return loadFile(r, path, (*Reader).ReadAccounts)
}

// LoadFinancialFile reads the financial export from disk.
func (r *Reader) LoadFinancialFile(path string) ([]FinancialRecord, error) {
	return loadFile(r, path, (*Reader).ReadFinancial)
}

// LoadJotformFile reads the Jotform export from disk.
func (r *Reader) LoadJotformFile(path string) ([]JotformRecord, error) {
	return loadFile(r, path, (*Reader).ReadJotform)
}

func loadFile[T any](r *Reader, path string, read func(*Reader, io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to open dataset file %s", path), err)
	}
	defer f.Close()
	return read(r, f)
}

// headerIndex maps verbatim column headers to their positions.
type headerIndex map[string]int

// get returns the trimmed-as-is cell for a header, or "" when the column is
// absent or the row is short. Missing cells are a row-level concern for the
// engine, never an error here.
func (h headerIndex) get(row []string, header string) string {
	idx, ok := h[header]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// readAll reads every data row of one export, validates the required headers
// are present and enforces the row ceiling.
func (r *Reader) readAll(src io.Reader, name string, required []string) ([][]string, headerIndex, error) {
	reader := csv.NewReader(src)
	// Source exports occasionally carry ragged rows; field counts are
	// validated per-cell via headerIndex.get instead.
	reader.FieldsPerRecord = -1

	raw, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.NewParsingError(fmt.Sprintf("invalid CSV in %s dataset", name), err)
	}
	if len(raw) == 0 {
		return nil, nil, errors.NewParsingError(fmt.Sprintf("%s dataset has no header row", name), nil)
	}

	header := make(headerIndex, len(raw[0]))
	for i, col := range raw[0] {
		// Strip a UTF-8 BOM if the export carries one.
		col = strings.TrimPrefix(col, "\ufeff")
		header[col] = i
	}

	for _, col := range required {
		if _, ok := header[col]; !ok {
			return nil, nil, errors.NewParsingError(
				fmt.Sprintf("%s dataset is missing required column %q", name, col), nil)
		}
	}

	rows := raw[1:]

	// Drop fully-empty lines the way the source dashboard's parser did.
	filtered := rows[:0]
	for _, row := range rows {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			filtered = append(filtered, row)
		}
	}
	rows = filtered

	if len(rows) > r.maxRows {
		return nil, nil, errors.NewValidationError(
			fmt.Sprintf("%s dataset has %d rows, exceeding the ceiling of %d", name, len(rows), r.maxRows), nil)
	}

	r.logger.Debug("parsed dataset",
		slog.String("dataset", name),
		slog.Int("rows", len(rows)))

	return rows, header, nil
}
