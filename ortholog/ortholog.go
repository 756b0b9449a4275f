// Package ortholog reads and filters a two-column ortholog correspondence
// table: column 0 holds genes of the species being translated, column 1 holds
// their orthologs in the reference species.
package ortholog

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/carbocation/orthoexpr"
	"github.com/carbocation/pfx"
	"gopkg.in/guregu/null.v3"
)

const (
	ColSource int = iota
	ColTarget
)

// Pair is one (source gene, target gene) correspondence. A pair whose source
// or target is not Valid cannot be used for translation.
type Pair struct {
	Source null.String
	Target null.String
}

// NewPair builds a pair from raw cells, treating blank and NA-style cells as
// missing.
func NewPair(source, target string) Pair {
	return Pair{
		Source: cell(source),
		Target: cell(target),
	}
}

func (p Pair) Valid() bool {
	return p.Source.Valid && p.Target.Valid
}

// Mapping is a many-to-many relation kept as an ordered list of pairs, since
// either side may repeat.
type Mapping struct {
	SourceName string
	TargetName string
	Pairs      []Pair
}

// Read parses a mapping. If hasHeader is set, the first record names the two
// columns. Columns beyond the first two are ignored.
func Read(rdr *csv.Reader, hasHeader bool) (Mapping, error) {
	out := Mapping{Pairs: make([]Pair, 0)}

	line := 0
	headerDone := !hasHeader
	for {
		rec, err := rdr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return out, pfx.Err(err)
		}
		line++

		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}

		if len(rec) <= ColTarget {
			return out, pfx.Err(fmt.Errorf("line %d has %d fields; expected at least 2 (source gene, target gene)", line, len(rec)))
		}

		if !headerDone {
			out.SourceName = strings.TrimSpace(rec[ColSource])
			out.TargetName = strings.TrimSpace(rec[ColTarget])
			headerDone = true
			continue
		}

		out.Pairs = append(out.Pairs, NewPair(rec[ColSource], rec[ColTarget]))
	}

	return out, nil
}

// Valid returns a copy of the mapping holding only the pairs with both a
// source and a target, in their original order.
func (m Mapping) Valid() Mapping {
	out := Mapping{
		SourceName: m.SourceName,
		TargetName: m.TargetName,
		Pairs:      make([]Pair, 0, len(m.Pairs)),
	}
	for _, p := range m.Pairs {
		if p.Valid() {
			out.Pairs = append(out.Pairs, p)
		}
	}

	return out
}

// Sources returns the distinct valid source genes in ascending order.
func (m Mapping) Sources() []string {
	seen := make(map[string]struct{}, len(m.Pairs))
	out := make([]string, 0, len(m.Pairs))
	for _, p := range m.Pairs {
		if !p.Valid() {
			continue
		}
		if _, exists := seen[p.Source.String]; exists {
			continue
		}
		seen[p.Source.String] = struct{}{}
		out = append(out, p.Source.String)
	}
	sort.Strings(out)

	return out
}

// TargetsBySource groups the valid targets of each source gene, preserving
// the order in which the pairs appear.
func (m Mapping) TargetsBySource() map[string][]string {
	out := make(map[string][]string)
	for _, p := range m.Pairs {
		if !p.Valid() {
			continue
		}
		out[p.Source.String] = append(out[p.Source.String], p.Target.String)
	}

	return out
}

func cell(raw string) null.String {
	return null.NewString(strings.TrimSpace(raw), !orthoexpr.IsMissing(raw))
}
