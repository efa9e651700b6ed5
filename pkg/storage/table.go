package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/synaptica-ai/vetpathogen/pkg/common/logger"
	"github.com/synaptica-ai/vetpathogen/pkg/common/models"
)

var ErrEmptyTable = errors.New("table has no header row")

// ParseError reports a malformed line in a delimited file.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseDelimiter accepts a literal single character or one of the names
// "comma", "tab", "semicolon". Empty input yields 0 (detect from extension).
func ParseDelimiter(value string) (rune, error) {
	switch strings.ToLower(value) {
	case "":
		return 0, nil
	case "comma", ",":
		return ',', nil
	case "tab", "\t", `\t`:
		return '\t', nil
	case "semicolon", ";":
		return ';', nil
	}
	runes := []rune(value)
	if len(runes) != 1 || runes[0] == '"' || runes[0] == '\r' || runes[0] == '\n' {
		return 0, fmt.Errorf("invalid delimiter %q", value)
	}
	return runes[0], nil
}

// DelimiterFor picks the delimiter for a path when none is configured.
func DelimiterFor(path string, configured rune) rune {
	if configured != 0 {
		return configured
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return '\t'
	default:
		return ','
	}
}

func LoadTable(path string, delim rune) (*models.Table, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := ReadTable(f, DelimiterFor(path, delim))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	logger.WithFields(logrus.Fields{
		"path":    path,
		"rows":    table.Len(),
		"columns": len(table.Columns),
	}).Debug("Table loaded")
	return table, nil
}

// ReadTable parses a delimited stream whose first record is the header.
func ReadTable(r io.Reader, delim rune) (*models.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, err
	}
	header = append([]string(nil), header...)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) != len(header) {
			line, _ := reader.FieldPos(0)
			return nil, &ParseError{
				Line: line,
				Err:  fmt.Errorf("%d fields, header has %d: %w", len(row), len(header), models.ErrRowCountMismatch),
			}
		}
		rows = append(rows, row)
	}

	return models.NewTable(header, rows)
}

func WriteTable(w io.Writer, table *models.Table, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim

	if err := writer.Write(table.Columns); err != nil {
		return err
	}
	if err := writer.WriteAll(table.Rows()); err != nil {
		return err
	}
	return writer.Error()
}

// SaveTable writes the table next to path and renames it into place, so the
// destination either holds the full table or is left as it was.
func SaveTable(path string, table *models.Table, delim rune) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = WriteTable(tmp, table, DelimiterFor(path, delim)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"path": path,
		"rows": table.Len(),
	}).Debug("Table saved")
	return nil
}
