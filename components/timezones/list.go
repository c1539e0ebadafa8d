package timezones

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

//go:embed data/iana_timezones.txt
var dataFS embed.FS

const zoneListPath = "data/iana_timezones.txt"

var embeddedZones = sync.OnceValues(func() ([]string, error) {
	f, err := dataFS.Open(zoneListPath)
	if err != nil {
		return nil, fmt.Errorf("timezones: open zone list: %w", err)
	}
	defer f.Close()
	return LoadZones(f)
})

// DefaultZones returns a sorted copy of the embedded IANA zone list.
func DefaultZones() ([]string, error) {
	zones, err := embeddedZones()
	if err != nil {
		return nil, err
	}
	return slices.Clone(zones), nil
}

// Contains reports whether name is an entry of the embedded list. Matching is
// exact and case-sensitive, as the platform expects.
func Contains(name string) (bool, error) {
	zones, err := embeddedZones()
	if err != nil {
		return false, err
	}
	_, found := slices.BinarySearch(zones, name)
	return found, nil
}

// LoadZones reads one zone per line. Blank lines and "#" comments are
// skipped; the result is sorted and free of duplicates.
func LoadZones(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, errors.New("timezones: missing reader")
	}
	var zones []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		zones = append(zones, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("timezones: scan zone list: %w", err)
	}
	slices.Sort(zones)
	return slices.Compact(zones), nil
}
