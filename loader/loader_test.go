package loader

import (
	"errors"
	"math"
	"reflect"
	"sort"
	"testing"

	"github.com/carbocation/orthoexpr/aggregate"
	"github.com/carbocation/orthoexpr/exprmatrix"
	"github.com/carbocation/orthoexpr/ortholog"
	"github.com/carbocation/orthoexpr/remap"
)

type row struct {
	Gene   string
	Values []float64
}

func matrix(t *testing.T, samples []string, rows ...row) *exprmatrix.Matrix {
	t.Helper()
	m := exprmatrix.New("gene", samples)
	for _, r := range rows {
		if err := m.AddRow(r.Gene, r.Values); err != nil {
			t.Fatal(err)
		}
	}

	return m
}

func mapping(pairs ...[2]string) ortholog.Mapping {
	out := ortholog.Mapping{SourceName: "test", TargetName: "train"}
	for _, p := range pairs {
		out.Pairs = append(out.Pairs, ortholog.NewPair(p[0], p[1]))
	}

	return out
}

func TestScenarios(t *testing.T) {
	for _, v := range []struct {
		Name     string
		Input    *exprmatrix.Matrix
		Mapping  ortholog.Mapping
		Expected []row
	}{
		{
			Name:     "many to one averages",
			Input:    matrix(t, []string{"s1", "s2"}, row{"g1", []float64{1, 3}}, row{"g2", []float64{5, 7}}),
			Mapping:  mapping([2]string{"g1", "tA"}, [2]string{"g2", "tA"}),
			Expected: []row{{"tA", []float64{3, 5}}},
		},
		{
			Name:     "singleton passes through",
			Input:    matrix(t, []string{"s1", "s2"}, row{"g1", []float64{2, 4}}),
			Mapping:  mapping([2]string{"g1", "tB"}),
			Expected: []row{{"tB", []float64{2, 4}}},
		},
		{
			Name: "one to many expands then sorts",
			Input: matrix(t, []string{"s1"},
				row{"g1", []float64{1}},
				row{"g2", []float64{3}},
				row{"g3", []float64{100}},
			),
			Mapping: mapping(
				[2]string{"g1", "tZ"},
				[2]string{"g1", "tA"},
				[2]string{"g2", "tA"},
				[2]string{"g3", ""},
			),
			Expected: []row{{"tA", []float64{2}}, {"tZ", []float64{1}}},
		},
	} {
		out, report, err := Load(v.Input, v.Mapping, Options{})
		if err != nil {
			t.Fatalf("%s: %v", v.Name, err)
		}

		got := make([]row, 0, out.NumRows())
		for i := range out.Genes {
			got = append(got, row{out.Genes[i], out.Values[i]})
		}
		if !reflect.DeepEqual(got, v.Expected) {
			t.Fatalf("%s: expected %+v, got %+v", v.Name, v.Expected, got)
		}

		if !sort.StringsAreSorted(out.Genes) {
			t.Fatalf("%s: rows not sorted: %v", v.Name, out.Genes)
		}
		if !reflect.DeepEqual(out.Samples, v.Input.Samples) {
			t.Fatalf("%s: samples changed: %v", v.Name, out.Samples)
		}
		if report.AggregatedRows != out.NumRows() || len(report.GroupSizes) != out.NumRows() {
			t.Fatalf("%s: report does not match output: %+v", v.Name, report)
		}
	}
}

func TestNoOverlap(t *testing.T) {
	m := matrix(t, []string{"s1"}, row{"g1", []float64{1}})

	out, report, err := Load(m, mapping([2]string{"g9", "tC"}), Options{})
	if !errors.Is(err, remap.ErrNoOverlap) {
		t.Fatalf("Expected ErrNoOverlap, got %v", err)
	}
	if out != nil {
		t.Fatal("Expected no matrix on failure")
	}
	if report.InputRows != 1 || report.SharedGenes != 0 {
		t.Fatalf("Unexpected report %+v", report)
	}
}

func TestMissingPolicyIsForwarded(t *testing.T) {
	m := matrix(t, []string{"s1"}, row{"g1", []float64{math.NaN()}}, row{"g2", []float64{4}})
	mp := mapping([2]string{"g1", "tA"}, [2]string{"g2", "tA"})

	out, _, err := Load(m, mp, Options{Missing: aggregate.SkipMissing})
	if err != nil {
		t.Fatal(err)
	}
	if out.Values[0][0] != 4 {
		t.Fatalf("skip: expected 4, got %v", out.Values[0][0])
	}

	out, _, err = Load(m, mp, Options{Missing: aggregate.PropagateMissing})
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(out.Values[0][0]) {
		t.Fatalf("propagate: expected NaN, got %v", out.Values[0][0])
	}
}
