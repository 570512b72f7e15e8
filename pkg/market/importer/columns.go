// Package importer reads market price observations from spreadsheets and
// HTML price tables, and writes query results back out as spreadsheets.
package importer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"agrimitra/pkg/apperr"
	"agrimitra/pkg/market/service"
)

// accepted header spellings per field
var aliases = map[string][]string{
	"crop":   {"crop_name", "crop", "commodity", "item"},
	"region": {"region", "state", "market", "mandi"},
	"min":    {"min_price", "min", "minimum", "minimum_price", "low"},
	"max":    {"max_price", "max", "maximum", "maximum_price", "high"},
	"avg":    {"avg_price", "avg", "average", "modal_price", "modal"},
	"unit":   {"unit", "units", "uom"},
}

var required = []string{"crop", "region", "min", "max", "avg"}

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	for _, r := range []string{" ", "-", "_", "(", ")", "."} {
		s = strings.ReplaceAll(s, r, "")
	}
	return s
}

// columns maps field -> column index for a header row.
type columns map[string]int

func parseHeader(head []string) (columns, error) {
	idx := map[string]int{}
	for i, h := range head {
		idx[norm(h)] = i
	}
	cols := columns{}
	for field, names := range aliases {
		for _, n := range names {
			if i, ok := idx[norm(n)]; ok {
				cols[field] = i
				break
			}
		}
	}
	for _, f := range required {
		if _, ok := cols[f]; !ok {
			return nil, apperr.Validation("missing %s column; found headers %v", f, head)
		}
	}
	return cols, nil
}

func (c columns) get(rec []string, field string) string {
	i, ok := c[field]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// row converts one record. ok is false for blank rows.
func (c columns) row(rec []string) (obs service.ObservationInput, ok bool, err error) {
	obs.CropName = c.get(rec, "crop")
	obs.Region = c.get(rec, "region")
	obs.Unit = c.get(rec, "unit")
	if obs.CropName == "" && obs.Region == "" {
		return obs, false, nil
	}
	for _, f := range []struct {
		name string
		dst  **decimal.Decimal
	}{{"min", &obs.MinPrice}, {"max", &obs.MaxPrice}, {"avg", &obs.AvgPrice}} {
		raw := c.get(rec, f.name)
		if raw == "" {
			continue
		}
		d, err := parsePrice(raw)
		if err != nil {
			return obs, false, apperr.Validation("%s price %q: %v", f.name, raw, err)
		}
		*f.dst = &d
	}
	return obs, true, nil
}

// parsePrice accepts values like "2,450", "₹18.50" or "24 /kg".
func parsePrice(raw string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		} else if r == '/' {
			break
		}
	}
	if b.Len() == 0 {
		return decimal.Zero, fmt.Errorf("no digits")
	}
	return decimal.NewFromString(b.String())
}
