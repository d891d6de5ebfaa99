package cli

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/gridfit/pkg/partition"
)

func TestParseWeights(t *testing.T) {
	tests := []struct {
		args    []string
		want    []float64
		wantErr bool
	}{
		{[]string{"1", "2", "3"}, []float64{1, 2, 3}, false},
		{[]string{"1.5,0.5", "2"}, []float64{1.5, 0.5, 2}, false},
		{[]string{"1,,2 "}, []float64{1, 2}, false},
		{[]string{"x"}, nil, true},
	}
	for _, tt := range tests {
		got, err := parseWeights(tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseWeights(%v) error = %v", tt.args, err)
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("parseWeights(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPartitionRows(t *testing.T) {
	weights := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	rows := partitionRows(weights, partition.Ranges(weights, 3))

	want := [][]string{
		{"1", "0–4", "1 2 3 4 5", "15"},
		{"2", "5–6", "6 7", "13"},
		{"3", "7–8", "8 9", "17"},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if !slices.Equal(rows[i], want[i]) {
			t.Errorf("row %d = %v, want %v", i, rows[i], want[i])
		}
	}
}

func TestPartitionCommand(t *testing.T) {
	out, err := runCLI(t, "partition", "1", "2", "3", "4", "5", "6", "7", "8", "9", "-k", "3")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Weights", "1 2 3 4 5", "max sum", "17"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	out, err = runCLI(t, "partition", "1,2,3", "-k", "5", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Groups [][]float64 `json:"groups"`
		MaxSum float64     `json:"max_sum"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("bad json %q: %v", out, err)
	}
	if len(got.Groups) != 3 || got.MaxSum != 3 {
		t.Errorf("k > n should give singletons, got %+v", got)
	}
}
