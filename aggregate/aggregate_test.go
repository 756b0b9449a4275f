package aggregate

import (
	"math"
	"testing"

	"github.com/carbocation/orthoexpr/exprmatrix"
)

var nan = math.NaN()

func matrix(t *testing.T, samples []string, genes []string, values ...[]float64) *exprmatrix.Matrix {
	t.Helper()
	m := exprmatrix.New("gene", samples)
	for i, gene := range genes {
		if err := m.AddRow(gene, values[i]); err != nil {
			t.Fatal(err)
		}
	}

	return m
}

func sameFloat(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}

	return math.Abs(a-b) < 1e-12
}

func TestMeanCollapsesDuplicates(t *testing.T) {
	m := matrix(t, []string{"s1", "s2"}, []string{"tA", "tA"}, []float64{1, 3}, []float64{5, 7})

	out, sizes := Mean(m, SkipMissing)
	if out.NumRows() != 1 || out.Genes[0] != "tA" {
		t.Fatalf("Expected one row tA, got %+v", out.Genes)
	}
	if out.Values[0][0] != 3 || out.Values[0][1] != 5 {
		t.Fatalf("Expected [3 5], got %v", out.Values[0])
	}
	if len(sizes) != 1 || sizes[0] != 2 {
		t.Fatalf("Expected group sizes [2], got %v", sizes)
	}
}

func TestMeanSingletonPassesThrough(t *testing.T) {
	m := matrix(t, []string{"s1", "s2"}, []string{"tB"}, []float64{2, 4})

	for _, policy := range []MissingPolicy{SkipMissing, PropagateMissing} {
		out, sizes := Mean(m, policy)
		if !out.Equal(m) {
			t.Fatalf("%s: singleton group changed: %+v", policy, out)
		}
		if sizes[0] != 1 {
			t.Fatalf("%s: expected group size 1, got %d", policy, sizes[0])
		}
	}
}

func TestMeanUniqueSortedAndColumnsPreserved(t *testing.T) {
	samples := []string{"t0", "t4", "t8"}
	m := matrix(t, samples,
		[]string{"AT5G", "AT1G", "AT3G", "AT1G", "AT5G", "AT1G"},
		[]float64{1, 2, 3},
		[]float64{10, 20, 30},
		[]float64{0, 0, 0},
		[]float64{20, 40, 60},
		[]float64{3, 4, 5},
		[]float64{30, 60, 90},
	)

	out, sizes := Mean(m, SkipMissing)

	expected := []struct {
		Gene   string
		Values []float64
		Size   int
	}{
		{"AT1G", []float64{20, 40, 60}, 3},
		{"AT3G", []float64{0, 0, 0}, 1},
		{"AT5G", []float64{2, 3, 4}, 2},
	}

	if out.NumRows() != len(expected) {
		t.Fatalf("Expected %d rows, got %d: %v", len(expected), out.NumRows(), out.Genes)
	}

	seen := make(map[string]struct{})
	for i, v := range expected {
		if _, dup := seen[out.Genes[i]]; dup {
			t.Fatalf("Gene %s appears more than once", out.Genes[i])
		}
		seen[out.Genes[i]] = struct{}{}

		if out.Genes[i] != v.Gene || sizes[i] != v.Size {
			t.Fatalf("Row %d: expected %+v, got %s (size %d)", i, v, out.Genes[i], sizes[i])
		}
		for j := range v.Values {
			if !sameFloat(out.Values[i][j], v.Values[j]) {
				t.Fatalf("Row %d: expected %v, got %v", i, v.Values, out.Values[i])
			}
		}
	}

	if out.NumCols() != len(samples) {
		t.Fatalf("Expected %d samples, got %d", len(samples), out.NumCols())
	}
	for j := range samples {
		if out.Samples[j] != samples[j] {
			t.Fatalf("Samples changed: %v", out.Samples)
		}
	}
	if out.IndexName != m.IndexName {
		t.Fatalf("Index name changed from %q to %q", m.IndexName, out.IndexName)
	}
}

func TestMeanMissingPolicies(t *testing.T) {
	m := matrix(t, []string{"s1", "s2", "s3"}, []string{"g", "g", "g"},
		[]float64{1, nan, nan},
		[]float64{3, 4, nan},
		[]float64{5, 8, nan},
	)

	for _, v := range []struct {
		Policy   MissingPolicy
		Expected []float64
	}{
		{SkipMissing, []float64{3, 6, nan}},
		{PropagateMissing, []float64{3, nan, nan}},
	} {
		out, _ := Mean(m, v.Policy)
		for j := range v.Expected {
			if !sameFloat(out.Values[0][j], v.Expected[j]) {
				t.Fatalf("%s: expected %v, got %v", v.Policy, v.Expected, out.Values[0])
			}
		}
	}
}

func TestMeanDoesNotModifyInput(t *testing.T) {
	m := matrix(t, []string{"s1"}, []string{"b", "a", "b"}, []float64{1}, []float64{2}, []float64{3})
	before := m.Clone()

	Mean(m, SkipMissing)

	if !m.Equal(before) {
		t.Fatalf("Input was modified: %+v", m)
	}
}

func TestMeanEmpty(t *testing.T) {
	m := exprmatrix.New("gene", []string{"s1"})

	out, sizes := Mean(m, SkipMissing)
	if out.NumRows() != 0 || len(sizes) != 0 || out.NumCols() != 1 {
		t.Fatalf("Expected an empty matrix with 1 sample, got %+v", out)
	}
}

func TestParseMissingPolicy(t *testing.T) {
	for _, v := range []struct {
		Name     string
		Expected MissingPolicy
		Err      bool
	}{
		{"skip", SkipMissing, false},
		{"propagate", PropagateMissing, false},
		{"Propagate", PropagateMissing, false},
		{"ignore", SkipMissing, true},
	} {
		p, err := ParseMissingPolicy(v.Name)
		if (err != nil) != v.Err {
			t.Fatalf("%+v: unexpected error state %v", v, err)
		}
		if err == nil && p != v.Expected {
			t.Fatalf("%+v: got %s", v, p)
		}
	}
}
