package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Record is one catalog entry. Fields are normalized (trimmed) at load time
// and immutable afterwards.
type Record struct {
	Track     string `json:"track"`
	Major     string `json:"major"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
}

// Catalog holds the fixed record list loaded at startup.
type Catalog struct {
	records  []Record
	collator *collate.Collator
}

// Load reads the catalog data file, normalizes every record, and drops
// records that are missing a track, major, or title.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes catalog records from raw JSON.
func Parse(data []byte) (*Catalog, error) {
	var raw []Record
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog data: %w", err)
	}

	records := make([]Record, 0, len(raw))
	for _, rec := range raw {
		rec = normalizeRecord(rec)
		if rec.Track == "" || rec.Major == "" || rec.Title == "" {
			continue
		}
		records = append(records, rec)
	}

	return &Catalog{
		records:  records,
		collator: collate.New(language.Korean),
	}, nil
}

func normalizeRecord(rec Record) Record {
	rec.Track = strings.TrimSpace(rec.Track)
	rec.Major = strings.TrimSpace(rec.Major)
	rec.Title = strings.TrimSpace(rec.Title)
	rec.Author = strings.TrimSpace(rec.Author)
	rec.Publisher = strings.TrimSpace(rec.Publisher)
	return rec
}

// Len returns the number of loaded records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Records returns a copy of the full record list in load order.
func (c *Catalog) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Filter returns the records matching the given track, major, and keyword.
// Track and major match by equality when non-empty; the keyword matches
// case-insensitively as a substring across all record fields. Input order is
// preserved.
func (c *Catalog) Filter(track, major, keyword string) []Record {
	track = strings.TrimSpace(track)
	major = strings.TrimSpace(major)
	keyword = strings.ToLower(strings.TrimSpace(keyword))

	out := make([]Record, 0, len(c.records))
	for _, rec := range c.records {
		if track != "" && rec.Track != track {
			continue
		}
		if major != "" && rec.Major != major {
			continue
		}
		if keyword != "" && !matchesKeyword(rec, keyword) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesKeyword(rec Record, keyword string) bool {
	hay := strings.ToLower(strings.Join([]string{
		rec.Track, rec.Major, rec.Title, rec.Author, rec.Publisher,
	}, " "))
	return strings.Contains(hay, keyword)
}

// Majors returns the distinct majors for the given track (all tracks when
// empty), sorted with Korean collation.
func (c *Catalog) Majors(track string) []string {
	track = strings.TrimSpace(track)
	seen := make(map[string]struct{})
	majors := make([]string, 0)
	for _, rec := range c.records {
		if track != "" && rec.Track != track {
			continue
		}
		if _, ok := seen[rec.Major]; ok {
			continue
		}
		seen[rec.Major] = struct{}{}
		majors = append(majors, rec.Major)
	}
	c.collator.SortStrings(majors)
	return majors
}

// Tracks returns the distinct tracks in the catalog, sorted with Korean
// collation.
func (c *Catalog) Tracks() []string {
	seen := make(map[string]struct{})
	tracks := make([]string, 0)
	for _, rec := range c.records {
		if _, ok := seen[rec.Track]; ok {
			continue
		}
		seen[rec.Track] = struct{}{}
		tracks = append(tracks, rec.Track)
	}
	c.collator.SortStrings(tracks)
	return tracks
}
