package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	enc "github.com/MrJamesThe3rd/rkap/internal/encoding"
	"github.com/MrJamesThe3rd/rkap/internal/transaction"
)

type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

func (p *CSVParser) Parse(r io.Reader) ([]transaction.ImportRow, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	reader := csv.NewReader(br)
	reader.Comma = sniffDelimiter(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := readRecords(reader)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	cols, err := columns(records[0])
	if err != nil {
		return nil, err
	}

	return toRows(cols, records[1:], func(key, value string) string {
		if key == transaction.FieldAmount {
			return normalizeAmount(value)
		}

		return value
	}), nil
}

// readRecords keeps one record per physical line after the header. The csv
// reader drops blank lines, so each one comes back as an empty record and
// row numbers still match the file.
func readRecords(reader *csv.Reader) ([][]string, error) {
	var (
		records [][]string
		next    int
	)

	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}

		if err != nil {
			return nil, err
		}

		start, _ := reader.FieldPos(0)
		if len(records) > 0 {
			for ; next < start; next++ {
				records = append(records, []string{})
			}
		}

		last := len(rec) - 1
		end, _ := reader.FieldPos(last)
		next = end + strings.Count(rec[last], "\n") + 1

		records = append(records, rec)
	}
}

// sniffDelimiter picks ';' or ',' by counting them in the header line.
func sniffDelimiter(br *bufio.Reader) rune {
	head, _ := br.Peek(br.Size())
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}

	if bytes.Count(head, []byte{';'}) > bytes.Count(head, []byte{','}) {
		return ';'
	}

	return ','
}
