package covers

import (
	"reflect"
	"testing"

	"bindery/internal/catalog"
)

func TestBuildQueries(t *testing.T) {
	tests := []struct {
		name string
		rec  catalog.Record
		want []string
	}{
		{
			name: "full record yields three tiers",
			rec:  catalog.Record{Title: "자료구조", Author: "홍길동", Publisher: "한빛"},
			want: []string{"자료구조 홍길동 한빛", "자료구조 홍길동", "자료구조"},
		},
		{
			name: "missing publisher collapses tier one into tier two",
			rec:  catalog.Record{Title: "자료구조", Author: "홍길동"},
			want: []string{"자료구조 홍길동", "자료구조"},
		},
		{
			name: "title only yields one tier",
			rec:  catalog.Record{Title: "자료구조"},
			want: []string{"자료구조"},
		},
		{
			name: "publisher without author",
			rec:  catalog.Record{Title: "자료구조", Publisher: "한빛"},
			want: []string{"자료구조 한빛", "자료구조"},
		},
		{
			name: "empty title yields nothing",
			rec:  catalog.Record{Author: "홍길동", Publisher: "한빛"},
			want: nil,
		},
		{
			name: "whitespace title yields nothing",
			rec:  catalog.Record{Title: "   "},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildQueries(tt.rec)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildQueries = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildQueriesMostSpecificFirst(t *testing.T) {
	got := BuildQueries(catalog.Record{Title: "운영체제", Author: "김철수", Publisher: "생능"})
	if len(got) != 3 {
		t.Fatalf("expected 3 tiers, got %v", got)
	}
	for i := 1; i < len(got); i++ {
		if len(got[i]) >= len(got[i-1]) {
			t.Errorf("tier %d (%q) should be shorter than tier %d (%q)", i+1, got[i], i, got[i-1])
		}
	}
}
