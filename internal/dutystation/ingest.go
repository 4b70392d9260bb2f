package dutystation

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var exportRank = regexp.MustCompile(`^([EWO])(\d+)([A-Z]*)$`)

// NormalizeExportRank converts DoD column headers (E01, W02, O03E) to pay
// grades (E-1, W-2, O-3E). Non-rank columns return "".
func NormalizeExportRank(col string) string {
	col = strings.ToUpper(strings.TrimSpace(col))
	m := exportRank.FindStringSubmatch(col)
	if m == nil {
		return ""
	}
	num := strings.TrimLeft(m[2], "0")
	if num == "" {
		return ""
	}
	return m[1] + "-" + num + m[3]
}

// Ingest builds a dataset from the published with-dependents and
// without-dependents rate sheets exported as CSV. Each sheet has an MHA code
// column, an MHA_NAME column and one column per grade.
func Ingest(withDep, withoutDep io.Reader, year int) (*Dataset, error) {
	d := &Dataset{
		Description: fmt.Sprintf("%d BAH (Basic Allowance for Housing) monthly rates", year),
		Year:        year,
		DataSource:  fmt.Sprintf("DoD %d BAH rates", year),
		Locations:   make(map[string]map[string]Rates),
	}
	if err := ingestSheet(d, withDep, true); err != nil {
		return nil, fmt.Errorf("with-dependents sheet: %w", err)
	}
	if err := ingestSheet(d, withoutDep, false); err != nil {
		return nil, fmt.Errorf("without-dependents sheet: %w", err)
	}
	if len(d.Locations) == 0 {
		return nil, fmt.Errorf("no locations found in rate sheets")
	}
	d.reindex()
	return d, nil
}

func ingestSheet(d *Dataset, r io.Reader, withDependents bool) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	nameCol := -1
	ranks := make([]string, len(header))
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), "MHA_NAME") {
			nameCol = i
			continue
		}
		ranks[i] = NormalizeExportRank(col)
	}
	if nameCol < 0 {
		return fmt.Errorf("missing MHA_NAME column")
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if nameCol >= len(record) {
			continue
		}
		name := strings.TrimSpace(record[nameCol])
		if name == "" || strings.EqualFold(name, "MHA_NAME") {
			continue
		}
		byRank, ok := d.Locations[name]
		if !ok {
			byRank = make(map[string]Rates)
			d.Locations[name] = byRank
		}
		for i, cell := range record {
			if i >= len(ranks) || ranks[i] == "" {
				continue
			}
			cell = strings.TrimSpace(strings.ReplaceAll(cell, ",", ""))
			if cell == "" {
				continue
			}
			rate, err := decimal.NewFromString(strings.TrimPrefix(cell, "$"))
			if err != nil {
				return fmt.Errorf("line %d column %s: invalid rate %q", line, header[i], cell)
			}
			rates := byRank[ranks[i]]
			if withDependents {
				rates.WithDependents = rate.Truncate(0)
			} else {
				rates.WithoutDependents = rate.Truncate(0)
			}
			byRank[ranks[i]] = rates
		}
	}
}
