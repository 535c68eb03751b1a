package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"ftm-analyzer/internal/models"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

var requiredHeaders = []string{
	models.HeaderTime,
	models.HeaderFlow,
	models.HeaderDistance,
	models.HeaderThroughput,
	models.HeaderPDR,
	models.HeaderLoss,
	models.HeaderDelay,
	models.HeaderRSSI,
	models.HeaderTxPower,
	models.HeaderDecision,
}

func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &MissingInputError{Path: path}
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	table, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return table, nil
}

// Read parses a comma-separated measurement table. Columns are located by
// header name, so their order in the file does not matter.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input: %w", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		columns[name] = i
	}
	for _, name := range requiredHeaders {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var rows []models.Measurement
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}
		if isBlank(record) {
			continue
		}

		row, err := parseRecord(record, columns, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return NewTable(rows), nil
}

func parseRecord(record []string, columns map[string]int, line int) (models.Measurement, error) {
	cell := func(name string) string {
		idx := columns[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	number := func(name string) (float64, error) {
		raw := cell(name)
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, &ParseError{Line: line, Column: name, Value: raw, Err: err}
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return 0, &ParseError{Line: line, Column: name, Value: raw, Err: ErrNotFinite}
		}
		return value, nil
	}

	row := models.Measurement{
		Flow:     cell(models.HeaderFlow),
		Decision: models.ParseDecision(cell(models.HeaderDecision)),
	}

	targets := []struct {
		header string
		dst    *float64
	}{
		{models.HeaderTime, &row.Time},
		{models.HeaderDistance, &row.Distance},
		{models.HeaderThroughput, &row.Throughput},
		{models.HeaderPDR, &row.PDR},
		{models.HeaderLoss, &row.Loss},
		{models.HeaderDelay, &row.Delay},
		{models.HeaderRSSI, &row.RSSI},
		{models.HeaderTxPower, &row.TxPower},
	}
	for _, target := range targets {
		value, err := number(target.header)
		if err != nil {
			return models.Measurement{}, err
		}
		*target.dst = value
	}

	if err := row.Validate(); err != nil {
		return models.Measurement{}, fmt.Errorf("invalid row on line %d: %w", line, err)
	}

	return row, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
