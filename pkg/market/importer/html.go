package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"agrimitra/pkg/apperr"
	"agrimitra/pkg/market/service"
)

// ErrPageTooLarge is returned when a fetched page exceeds the byte limit.
var ErrPageTooLarge = errors.New("page too large")

// FromHTML fetches url and reads observations from the first table whose
// header names the required price columns. A body longer than maxBytes is
// refused rather than parsed in part.
func FromHTML(ctx context.Context, client *http.Client, url string, maxBytes int64) ([]service.ObservationInput, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperr.Validation("bad url: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", url, resp.Status)
	}
	if resp.ContentLength > maxBytes {
		return nil, ErrPageTooLarge
	}
	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(ct, "text/html") {
		return nil, fmt.Errorf("unsupported content-type: %s", ct)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > maxBytes {
		return nil, ErrPageTooLarge
	}
	return ParseHTML(bytes.NewReader(b))
}

// ParseHTML reads observations from an HTML document.
func ParseHTML(r io.Reader) ([]service.ObservationInput, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var (
		out     []service.ObservationInput
		found   bool
		scanErr error
	)
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		trs := table.Find("tr")
		if trs.Length() == 0 {
			return true
		}
		cols, err := parseHeader(cells(trs.First()))
		if err != nil {
			return true // not a price table
		}
		found = true
		trs.Slice(1, trs.Length()).EachWithBreak(func(i int, tr *goquery.Selection) bool {
			obs, ok, err := cols.row(cells(tr))
			if err != nil {
				scanErr = fmt.Errorf("table row %d: %w", i+1, err)
				return false
			}
			if ok {
				out = append(out, obs)
			}
			return true
		})
		return false
	})
	if scanErr != nil {
		return nil, scanErr
	}
	if !found {
		return nil, apperr.Validation("no price table found")
	}
	return out, nil
}

func cells(tr *goquery.Selection) []string {
	var rec []string
	tr.Find("th,td").Each(func(_ int, s *goquery.Selection) {
		rec = append(rec, strings.TrimSpace(s.Text()))
	})
	return rec
}
