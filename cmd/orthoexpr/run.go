package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"unicode/utf8"

	"cloud.google.com/go/storage"
	"github.com/carbocation/orthoexpr"
	"github.com/carbocation/orthoexpr/exprmatrix"
	"github.com/carbocation/orthoexpr/labels"
	"github.com/carbocation/orthoexpr/loader"
	"github.com/carbocation/orthoexpr/ortholog"
	"github.com/carbocation/pfx"
)

// run executes every stage in memory and only then creates the output, so a
// failure at any stage leaves nothing behind. It returns the output path.
func run(cfg config, client *storage.Client) (string, error) {
	rdr, err := orthoexpr.ReadTable(cfg.ExpressionPath, client, cfg.Delimiter)
	if err != nil {
		return "", err
	}
	matrix, err := exprmatrix.Read(rdr)
	if err != nil {
		return "", fmt.Errorf("%s: %w", cfg.ExpressionPath, err)
	}
	log.Printf("Loaded %d genes x %d samples\n", matrix.NumRows(), matrix.NumCols())

	rdr, err = orthoexpr.ReadTable(cfg.OrthologList, client, cfg.Delimiter)
	if err != nil {
		return "", err
	}
	mapping, err := ortholog.Read(rdr, cfg.OrthologHeader)
	if err != nil {
		return "", fmt.Errorf("%s: %w", cfg.OrthologList, err)
	}
	log.Printf("Loaded %d ortholog pairs\n", len(mapping.Pairs))

	out, report, err := loader.Load(matrix, mapping, loader.Options{Missing: cfg.Missing})
	if err != nil {
		return "", err
	}
	logReport(report)

	if cfg.LabelPath != "" {
		rdr, err = orthoexpr.ReadTable(cfg.LabelPath, client, cfg.Delimiter)
		if err != nil {
			return "", err
		}
		ls, err := labels.Read(rdr)
		if err != nil {
			return "", fmt.Errorf("%s: %w", cfg.LabelPath, err)
		}
		if out, err = labels.Apply(out, labels.Strings(ls)); err != nil {
			return "", fmt.Errorf("%s: %w", cfg.LabelPath, err)
		}
		log.Printf("Relabeled %d samples\n", out.NumCols())
	}

	outPath := orthoexpr.JoinPath(cfg.OutDir, cfg.SpeciesName+"_orthologs.csv")
	if err := writeMatrix(outPath, out, client); err != nil {
		return "", err
	}

	return outPath, nil
}

func writeMatrix(outPath string, m *exprmatrix.Matrix, client *storage.Client) error {
	w, err := orthoexpr.MaybeCreateOnGoogleStorage(outPath, client)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	err = exprmatrix.Write(bw, m)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := w.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		// Never leave a truncated local file behind
		if !orthoexpr.IsGoogleStoragePath(outPath) || client == nil {
			os.Remove(outPath)
		}
		return pfx.Err(fmt.Errorf("%s: %w", outPath, err))
	}

	return nil
}

func parseDelimiter(name string) (rune, error) {
	switch name {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	case "comma":
		return ',', nil
	}

	if utf8.RuneCountInString(name) != 1 {
		return 0, fmt.Errorf("Delimiter %q must be 'tab', 'comma', or a single character", name)
	}
	r, _ := utf8.DecodeRuneInString(name)

	return r, nil
}
