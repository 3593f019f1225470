package county

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrUnknownCounty is returned when a county has no directory entry.
var ErrUnknownCounty = errors.New("unknown county")

// Directory is the read-mostly county -> records-request email mapping.
// It is loaded once at startup from a CSV file (with an optional JSON
// fallback from the environment) and only changes on an explicit Refresh.
type Directory struct {
	csvPath string
	mapJSON string

	mu      sync.RWMutex
	entries map[string]string
}

// New loads a Directory from the given CSV path. mapJSON, when non-empty,
// is a JSON object of county -> email used to fill gaps; CSV entries win.
func New(csvPath, mapJSON string) (*Directory, error) {
	d := &Directory{csvPath: csvPath, mapJSON: mapJSON}
	if _, err := d.Refresh(); err != nil {
		return nil, err
	}
	return d, nil
}

// Resolve returns the destination email for a county. The lookup is an
// exact, case-sensitive map hit.
func (d *Directory) Resolve(countyName string) (string, error) {
	d.mu.RLock()
	email, ok := d.entries[countyName]
	d.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCounty, countyName)
	}
	return email, nil
}

// Len reports the number of loaded entries.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// Refresh reloads the mapping from its sources and returns the entry count.
func (d *Directory) Refresh() (int, error) {
	envMap := readEnvJSON(d.mapJSON)

	csvMap, err := readCSV(d.csvPath)
	if err != nil {
		return 0, err
	}

	// CSV overrides; env JSON fills gaps.
	merged := make(map[string]string, len(envMap)+len(csvMap))
	for k, v := range envMap {
		merged[k] = v
	}
	for k, v := range csvMap {
		merged[k] = v
	}
	if len(merged) == 0 {
		return 0, errors.New("county directory is empty")
	}

	d.mu.Lock()
	d.entries = merged
	d.mu.Unlock()

	log.Info().Int("entries", len(merged)).Int("csv", len(csvMap)).Int("env", len(envMap)).
		Msg("County directory loaded")
	return len(merged), nil
}

func readEnvJSON(raw string) map[string]string {
	if raw == "" {
		return nil
	}
	var data map[string]string
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		log.Warn().Err(err).Msg("Bad COUNTY_EMAIL_MAP JSON, ignoring")
		return nil
	}
	out := make(map[string]string, len(data))
	for k, v := range data {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k != "" && v != "" {
			out[k] = v
		}
	}
	return out
}

// Email column candidates, by priority. County contact CSVs in the wild are
// not consistent about header names.
var emailColumns = []string{
	"email", "request email", "records_email", "contact_email",
	"fire_records_email", "public_records_email", "foia_email", "pio_email",
}

func readCSV(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", path).Msg("County CSV not found")
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // contact CSVs in the wild are ragged
	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}

	countyIdx := -1
	emailIdx := -1
	emailRank := len(emailColumns)
	for i, h := range header {
		hl := strings.ToLower(strings.TrimSpace(h))
		if hl == "county" || hl == "county_name" {
			countyIdx = i
			continue
		}
		for rank, cand := range emailColumns {
			if hl == cand && rank < emailRank {
				emailIdx, emailRank = i, rank
			}
		}
	}
	if countyIdx == -1 {
		return nil, fmt.Errorf("county CSV %s has no county column", path)
	}

	result := make(map[string]string)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if countyIdx >= len(row) {
			continue
		}
		county := strings.TrimSpace(row[countyIdx])
		if county == "" {
			continue
		}

		email := ""
		if emailIdx != -1 && emailIdx < len(row) {
			email = strings.TrimSpace(row[emailIdx])
		}
		if email == "" {
			// Last resort: take anything in the row that looks like an email.
			for _, v := range row {
				v = strings.TrimSpace(v)
				if strings.Contains(v, "@") && strings.Contains(v, ".") {
					email = v
					break
				}
			}
		}
		if email != "" {
			result[county] = email
		}
	}
	return result, nil
}
