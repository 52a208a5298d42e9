// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package recommend

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestAlgorithm_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		alg  Algorithm
		want string
	}{
		{AlgorithmLastViewed, "last-viewed"},
		{AlgorithmSelect, "select"},
		{AlgorithmRandomizedSelect, "randomized-select"},
		{AlgorithmOptimalPosition, "optimal-position"},
		{Algorithm(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.alg.String(); got != tt.want {
			t.Errorf("Algorithm(%d).String() = %q, want %q", tt.alg, got, tt.want)
		}
	}
}

func TestParseAlgorithm(t *testing.T) {
	t.Parallel()

	for _, alg := range Algorithms {
		parsed, err := ParseAlgorithm(alg.String())
		if err != nil || parsed != alg {
			t.Errorf("ParseAlgorithm(%q) = %v, %v", alg.String(), parsed, err)
		}
	}

	if _, err := ParseAlgorithm("collaborative"); err == nil {
		t.Error("ParseAlgorithm accepted an unknown tag")
	}
}

func TestNewReason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key     ReasonKey
		percent int
		want    string
	}{
		{ReasonLastViewed, 0, "based on last viewed book"},
		{ReasonTopPercentile, 15, "top 15% of ratings"},
		{ReasonRandomDiscovery, 0, "balanced random discovery"},
		{ReasonPreferenceCenter, 0, "closest to the center of your preferences"},
	}

	for _, tt := range tests {
		r := NewReason(tt.key, tt.percent)
		if r.String() != tt.want {
			t.Errorf("NewReason(%s).String() = %q, want %q", tt.key, r.String(), tt.want)
		}
		if tt.key != ReasonTopPercentile && r.Percent != 0 {
			t.Errorf("NewReason(%s) kept percent %d", tt.key, r.Percent)
		}
	}
}

func TestRecommendation_JSON(t *testing.T) {
	t.Parallel()

	rec := Recommendation{
		Item:      Item{ID: "ol-OL1W", Title: "Dune", Rating: 4.5, Genre: "Fiction", X: 80, Y: 90},
		Algorithm: AlgorithmRandomizedSelect,
		Reason:    NewReason(ReasonRandomDiscovery, 0),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	s := string(data)
	for _, want := range []string{`"id":"ol-OL1W"`, `"algorithm":"randomized-select"`, `"key":"random_discovery"`} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON %s missing %s", s, want)
		}
	}

	var decoded Recommendation
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Algorithm != AlgorithmRandomizedSelect || decoded.ID != "ol-OL1W" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestCountByAlgorithm(t *testing.T) {
	t.Parallel()

	recs := []Recommendation{
		{Algorithm: AlgorithmSelect},
		{Algorithm: AlgorithmSelect},
		{Algorithm: AlgorithmOptimalPosition},
	}

	counts := CountByAlgorithm(recs)
	want := map[string]int{"last-viewed": 0, "select": 2, "randomized-select": 0, "optimal-position": 1}
	for tag, n := range want {
		if counts[tag] != n {
			t.Errorf("counts[%s] = %d, want %d", tag, counts[tag], n)
		}
	}
}
