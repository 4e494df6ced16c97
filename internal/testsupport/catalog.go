package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"

	"bindery/internal/catalog"
)

// WriteCatalog serializes the given records to path so commands and servers
// under test can load them as a catalog data file.
func WriteCatalog(t testing.TB, path string, records []catalog.Record) {
	t.Helper()

	data, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("marshal catalog: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write catalog %s: %v", path, err)
	}
}

// SampleRecords returns a small fixed record set covering two tracks.
func SampleRecords() []catalog.Record {
	return []catalog.Record{
		{Track: "공학", Major: "컴퓨터공학", Title: "운영체제", Author: "김철수", Publisher: "한빛"},
		{Track: "공학", Major: "컴퓨터공학", Title: "자료구조", Author: "이영희", Publisher: "생능"},
		{Track: "인문", Major: "국어국문", Title: "한국문학사", Author: "박민수", Publisher: "창비"},
	}
}
