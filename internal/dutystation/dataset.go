// Package dutystation provides Basic Allowance for Housing rates keyed by duty
// station, pay grade and dependency status.
package dutystation

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
)

//go:embed bah_2026.json
var embeddedBAH []byte

// Provider looks up housing allowances. Implementations are read-only and safe
// for concurrent use.
type Provider interface {
	// Rate returns the monthly rate, or false when no row exists
	Rate(station, rank string, withDependents bool) (decimal.Decimal, bool)
	// Stations lists the known duty stations in sorted order
	Stations() []string
}

// Rates holds the two BAH columns for one grade at one station
type Rates struct {
	WithDependents    decimal.Decimal `json:"with_dep"`
	WithoutDependents decimal.Decimal `json:"no_dep"`
}

// Dataset is a static BAH extract. Station names are matched case-insensitively.
type Dataset struct {
	Description string                      `json:"description"`
	Year        int                         `json:"year"`
	DataSource  string                      `json:"data_source"`
	Note        string                      `json:"note,omitempty"`
	Locations   map[string]map[string]Rates `json:"locations"`

	index    map[string]string
	stations []string
}

// Embedded returns the sample dataset compiled into the binary
func Embedded() (*Dataset, error) {
	return Parse(embeddedBAH)
}

// Load reads a dataset file, using the embedded sample when path is empty
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Embedded()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read BAH dataset %s: %w", path, err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load BAH dataset %s: %w", path, err)
	}
	return d, nil
}

// Parse decodes a JSON dataset and builds its lookup index
func Parse(data []byte) (*Dataset, error) {
	var d Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse BAH dataset: %w", err)
	}
	if len(d.Locations) == 0 {
		return nil, fmt.Errorf("BAH dataset has no locations")
	}
	d.reindex()
	return &d, nil
}

func (d *Dataset) reindex() {
	d.index = make(map[string]string, len(d.Locations))
	d.stations = make([]string, 0, len(d.Locations))
	for name, byRank := range d.Locations {
		d.index[stationKey(name)] = name
		d.stations = append(d.stations, name)

		normalized := make(map[string]Rates, len(byRank))
		for rank, rates := range byRank {
			normalized[domain.NormalizeRank(rank)] = rates
		}
		d.Locations[name] = normalized
	}
	sort.Strings(d.stations)
}

func stationKey(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), " "))
}

// Rate implements Provider. Non-positive rates count as missing.
func (d *Dataset) Rate(station, rank string, withDependents bool) (decimal.Decimal, bool) {
	name, ok := d.index[stationKey(station)]
	if !ok {
		return decimal.Zero, false
	}
	rates, ok := d.Locations[name][domain.NormalizeRank(rank)]
	if !ok {
		return decimal.Zero, false
	}
	rate := rates.WithoutDependents
	if withDependents {
		rate = rates.WithDependents
	}
	if !rate.IsPositive() {
		return decimal.Zero, false
	}
	return rate, true
}

// Stations implements Provider
func (d *Dataset) Stations() []string {
	out := make([]string, len(d.stations))
	copy(out, d.stations)
	return out
}

// Location returns every grade's rates at one station
func (d *Dataset) Location(station string) (map[string]Rates, bool) {
	name, ok := d.index[stationKey(station)]
	if !ok {
		return nil, false
	}
	return d.Locations[name], true
}

// Search returns stations whose name contains the query, ignoring case
func (d *Dataset) Search(query string) []string {
	q := stationKey(query)
	var out []string
	for _, name := range d.stations {
		if strings.Contains(stationKey(name), q) {
			out = append(out, name)
		}
	}
	return out
}

// Write encodes the dataset as indented JSON
func (d *Dataset) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode BAH dataset: %w", err)
	}
	return nil
}
