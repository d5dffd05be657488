package locations

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"survey-route-service/internal/domain"
	"survey-route-service/internal/ports"
)

// CSVSource loads visit sites from a CSV export carrying latitude, longitude
// and region columns. Column names default to the city open-data export
// headers and can be overridden for other files.
type CSVSource struct {
	Path         string
	LatColumn    string
	LonColumn    string
	RegionColumn string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{
		Path:         path,
		LatColumn:    "Latitude",
		LonColumn:    "Longitude",
		RegionColumn: "Borough",
	}
}

func (s *CSVSource) LoadSites(ctx context.Context) ([]ports.Site, error) {
	if strings.TrimSpace(s.Path) == "" {
		return nil, errors.New("load sites: path must not be empty")
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("load sites: open %q: %w", s.Path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("load sites: read header of %q: %w", s.Path, err)
	}

	latIdx, lonIdx, regionIdx := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case s.LatColumn:
			latIdx = i
		case s.LonColumn:
			lonIdx = i
		case s.RegionColumn:
			regionIdx = i
		}
	}
	if latIdx < 0 || lonIdx < 0 {
		return nil, fmt.Errorf(
			"load sites: %q is missing required columns %q/%q", s.Path, s.LatColumn, s.LonColumn)
	}
	if regionIdx < 0 {
		return nil, fmt.Errorf("load sites: %q is missing region column %q", s.Path, s.RegionColumn)
	}

	var sites []ports.Site
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load sites: %w", err)
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("load sites: read %q line %d: %w", s.Path, line, err)
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(record[latIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("load sites: %q line %d: bad latitude %q: %w", s.Path, line, record[latIdx], err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(record[lonIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("load sites: %q line %d: bad longitude %q: %w", s.Path, line, record[lonIdx], err)
		}

		sites = append(sites, ports.Site{
			Coordinate: domain.Coordinate{Latitude: lat, Longitude: lon},
			Region:     domain.Region(strings.TrimSpace(record[regionIdx])),
		})
	}

	return sites, nil
}
