package match

import (
	"sort"
	"testing"
)

func TestRank(t *testing.T) {
	candidates := Rank("postalAddress", []string{"person", "postal_address", "PostalAdress", "address"})

	if len(candidates) != 4 {
		t.Fatalf("Expected 4 candidates, got %d", len(candidates))
	}

	// Same name after normalization
	if candidates[0].Name != "postal_address" || candidates[0].Score != 1.0 {
		t.Errorf("Expected exact match 'postal_address' first, got %+v", candidates[0])
	}

	if candidates[1].Name != "PostalAdress" {
		t.Errorf("Expected 'PostalAdress' second, got '%s'", candidates[1].Name)
	}
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		want     string
		names    []string
		expected string
		found    bool
	}{
		{"adress", []string{"address", "person"}, "address", true},
		{"defintions", []string{"definitions", "properties"}, "definitions", true},
		{"defs", []string{"$defs", "definitions"}, "$defs", true},
		{"zzz", []string{"address", "person"}, "", false},
		{"address", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, ok := Suggest(tt.want, tt.names)
			if got != tt.expected || ok != tt.found {
				t.Errorf("Suggest(%q, %v) = %q, %v, want %q, %v", tt.want, tt.names, got, ok, tt.expected, tt.found)
			}
		})
	}
}

func TestCandidateList_Sorting(t *testing.T) {
	candidates := CandidateList{
		{Name: "b", Score: 0.5},
		{Name: "c", Score: 0.9},
		{Name: "a", Score: 0.5},
	}

	sort.Sort(candidates)

	expected := []string{"c", "a", "b"}
	for i, name := range expected {
		if candidates[i].Name != name {
			t.Errorf("Position %d: expected %q, got %q", i, name, candidates[i].Name)
		}
	}
}

func TestCandidateList_TopAndAbove(t *testing.T) {
	candidates := CandidateList{
		{Name: "a", Score: 0.9},
		{Name: "b", Score: 0.6},
		{Name: "c", Score: 0.2},
	}

	if got := candidates.Top(2); len(got) != 2 {
		t.Errorf("Top(2) returned %d candidates", len(got))
	}

	if got := candidates.Top(10); len(got) != 3 {
		t.Errorf("Top(10) returned %d candidates", len(got))
	}

	if got := candidates.Above(0.6); len(got) != 2 || got[1].Name != "b" {
		t.Errorf("Above(0.6) = %+v", got)
	}
}
