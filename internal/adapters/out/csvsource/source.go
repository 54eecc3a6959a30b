// Package csvsource reads and updates order rows in a CSV export file. It
// implements the row source port for file-based deployments, where the order
// sheet is exported from the shop and edited in place.
//
// The file is reread on every pass and rewritten atomically on every status
// update, so edits made externally between passes are picked up and a crash
// mid-write never leaves a half-written sheet behind.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"notifier/internal/core/domain/model/kernel"
	"notifier/internal/core/domain/model/order"
	"notifier/internal/core/ports"
	"notifier/internal/pkg/errs"
)

// Column headers expected in the export. Matching is case-insensitive and
// ignores surrounding whitespace. The status column is created on first
// write when the export does not carry it yet.
const (
	billingNameColumn      = "Billing Name"
	shippingPhoneColumn    = "Shipping Phone"
	lineitemNameColumn     = "Lineitem name"
	lineitemQuantityColumn = "Lineitem quantity"
	totalColumn            = "Total"
	msgStatusColumn        = "Msg Status"
)

// FileRowSource implements RowSource over a CSV file.
//
// Row IDs are sheet row numbers: the header is row 1, the first data row is
// row 2. Numbers stay stable for the duration of a pass because the pass
// works on a snapshot, and status writes address rows by number.
type FileRowSource struct {
	path string

	// mu serializes writes; a rewrite in flight must not interleave with
	// another write's read-modify-rename cycle
	mu sync.Mutex
}

// NewFileRowSource creates a row source reading from the CSV file at path.
func NewFileRowSource(path string) *FileRowSource {
	return &FileRowSource{path: path}
}

// columns holds resolved header positions. msgStatus is -1 when the export
// does not carry a status column yet.
type columns struct {
	billingName      int
	shippingPhone    int
	lineitemName     int
	lineitemQuantity int
	total            int
	msgStatus        int
}

func resolveColumns(header []string) (columns, error) {
	find := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}

	cols := columns{
		billingName:      find(billingNameColumn),
		shippingPhone:    find(shippingPhoneColumn),
		lineitemName:     find(lineitemNameColumn),
		lineitemQuantity: find(lineitemQuantityColumn),
		total:            find(totalColumn),
		msgStatus:        find(msgStatusColumn),
	}

	required := map[string]int{
		billingNameColumn:      cols.billingName,
		shippingPhoneColumn:    cols.shippingPhone,
		lineitemNameColumn:     cols.lineitemName,
		lineitemQuantityColumn: cols.lineitemQuantity,
		totalColumn:            cols.total,
	}
	for name, idx := range required {
		if idx < 0 {
			return columns{}, errs.NewValueIsRequiredError(fmt.Sprintf("column %q", name))
		}
	}

	return cols, nil
}

// cell returns the record field at idx, tolerating short records and absent
// columns: both read as blank.
func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// ReadAll parses the whole sheet into line snapshots.
//
// Blank totals count as zero; a malformed non-blank total fails the fetch
// with the offending row number so the sheet can be fixed, rather than a
// wrong sum reaching a customer.
func (s *FileRowSource) ReadAll(ctx context.Context) ([]*order.Line, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	header, records, err := s.readSheet()
	if err != nil {
		return nil, errors.Join(ports.ErrRowSourceUnavailable, err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(records))
	for i, record := range records {
		rowNumber := i + 2 // row 1 is the header

		total := kernel.NewMoneyFromMinorUnits(0)
		if raw := strings.TrimSpace(cell(record, cols.total)); raw != "" {
			total, err = kernel.ParseMoney(raw)
			if err != nil {
				return nil, errs.NewValueIsInvalidErrorWithCause(
					fmt.Sprintf("total in row %d", rowNumber), err)
			}
		}

		line, err := order.NewLine(
			strconv.Itoa(rowNumber),
			cell(record, cols.billingName),
			cell(record, cols.lineitemName),
			cell(record, cols.lineitemQuantity),
			total,
			cell(record, cols.shippingPhone),
			order.DeliveryStatusFromCell(cell(record, cols.msgStatus)),
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// WriteStatus sets the status cell of one sheet row and rewrites the file.
//
// The rewrite goes through a temporary file in the same directory followed
// by a rename, so readers only ever observe a complete sheet. A missing
// status column is appended to the header on the first write.
func (s *FileRowSource) WriteStatus(ctx context.Context, rowID string, status order.DeliveryStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := status.Validate(); err != nil {
		return err
	}

	rowNumber, err := strconv.Atoi(rowID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("rowID", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	header, records, err := s.readSheet()
	if err != nil {
		return err
	}

	idx := rowNumber - 2
	if idx < 0 || idx >= len(records) {
		return errs.NewObjectNotFoundError("sheet row", rowID)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return err
	}
	if cols.msgStatus < 0 {
		header = append(header, msgStatusColumn)
		cols.msgStatus = len(header) - 1
	}

	for len(records[idx]) <= cols.msgStatus {
		records[idx] = append(records[idx], "")
	}
	records[idx][cols.msgStatus] = status.CellValue()

	return s.rewriteSheet(header, records)
}

func (s *FileRowSource) readSheet() (header []string, records [][]string, err error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, errs.NewValueIsRequiredError("header row")
	}

	return all[0], all[1:], nil
}

func (s *FileRowSource) rewriteSheet(header []string, records [][]string) error {
	width := len(header)

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".rows-*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	if err = writer.Write(header); err != nil {
		tmp.Close()
		return err
	}
	for _, record := range records {
		for len(record) < width {
			record = append(record, "")
		}
		if err = writer.Write(record); err != nil {
			tmp.Close()
			return err
		}
	}
	writer.Flush()
	if err = writer.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}
