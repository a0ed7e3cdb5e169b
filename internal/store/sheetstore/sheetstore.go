package sheetstore

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"hri-companion/internal/store"
)

// SheetStore treats one Google spreadsheet as the record store: one worksheet
// per collection, row 1 holding the column headers, data from row 2 down.
// Records are only ever appended, so row order is storage order.
type SheetStore struct {
	svc           *sheets.Service
	spreadsheetID string
}

func New(svc *sheets.Service, spreadsheetID string) *SheetStore {
	return &SheetStore{svc: svc, spreadsheetID: spreadsheetID}
}

func (s *SheetStore) Insert(ctx context.Context, col store.Collection, row store.Row) error {
	existing, err := s.GetByID(ctx, col, row[col.IDColumn()])
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	if existing != nil {
		return store.ErrDuplicateKey
	}

	valueRange := &sheets.ValueRange{Values: [][]interface{}{rowCells(col.Headers, row)}}
	_, err = s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, col.Name+"!A1", valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("%w: append to %s failed: %v", store.ErrUnavailable, col.Name, err)
	}
	return nil
}

func (s *SheetStore) GetByID(ctx context.Context, col store.Collection, id string) (store.Row, error) {
	rows, err := s.readAll(ctx, col)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row[col.IDColumn()] == id {
			return row, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *SheetStore) ListByField(ctx context.Context, col store.Collection, field, value string) ([]store.Row, error) {
	rows, err := s.readAll(ctx, col)
	if err != nil {
		return nil, err
	}
	var matched []store.Row
	for _, row := range rows {
		if row[field] == value {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

func (s *SheetStore) LatestByField(ctx context.Context, col store.Collection, field, value string) (store.Row, error) {
	rows, err := s.ListByField(ctx, col, field, value)
	if err != nil {
		return nil, err
	}
	return store.LatestRow(rows), nil
}

func (s *SheetStore) Ping(ctx context.Context) error {
	_, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: spreadsheet unreachable: %v", store.ErrUnavailable, err)
	}
	return nil
}

func (s *SheetStore) readAll(ctx context.Context, col store.Collection) ([]store.Row, error) {
	readRange := fmt.Sprintf("%s!A2:%s", col.Name, columnLetter(len(col.Headers)))
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s failed: %v", store.ErrUnavailable, col.Name, err)
	}

	rows := make([]store.Row, 0, len(resp.Values))
	for _, cells := range resp.Values {
		rows = append(rows, cellsToRow(col.Headers, cells))
	}
	return rows, nil
}

func cellsToRow(headers []string, cells []interface{}) store.Row {
	row := make(store.Row, len(headers))
	for i, header := range headers {
		if i < len(cells) {
			row[header] = fmt.Sprint(cells[i])
		} else {
			row[header] = ""
		}
	}
	return row
}

func rowCells(headers []string, row store.Row) []interface{} {
	cells := make([]interface{}, len(headers))
	for i, header := range headers {
		cells[i] = row[header]
	}
	return cells
}

// columnLetter converts a 1-based column count to its A1-notation letter.
func columnLetter(n int) string {
	letters := ""
	for n > 0 {
		n--
		letters = string(rune('A'+n%26)) + letters
		n /= 26
	}
	return letters
}
