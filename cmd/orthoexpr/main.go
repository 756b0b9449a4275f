// orthoexpr translates the gene identifiers of an expression matrix from a
// test species into those of a training species via an ortholog list,
// averaging genes that collapse onto the same ortholog. Sample columns can
// optionally be relabeled (e.g. with sampling times).
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/orthoexpr"
	"github.com/carbocation/orthoexpr/aggregate"
	_ "github.com/carbocation/orthoexpr/compileinfoprint"
	"github.com/carbocation/orthoexpr/remap"
)

type config struct {
	OrthologList   string
	OrthologHeader bool
	ExpressionPath string
	LabelPath      string
	OutDir         string
	SpeciesName    string
	Missing        aggregate.MissingPolicy
	Delimiter      rune
}

func main() {
	var cfg config
	var missing, delimiter string

	flag.StringVar(&cfg.OrthologList, "ortholog_list", "data/ortholog_lists/helleri_ortholog_list.csv", "Ortholog list with genes of the non-model (test) species in column 0 and their orthologs in the model (training) species in column 1. Optionally, may be a google storage URL (gs://)")
	flag.BoolVar(&cfg.OrthologHeader, "ortholog_header", true, "Whether the first line of the ortholog list is a header")
	flag.StringVar(&cfg.ExpressionPath, "x_test", "data/original_exp_matrices/original_helleri_exp.csv", "Expression matrix of the test species whose genes will be mapped to orthologs. First column holds gene IDs, header holds sample IDs. Optionally, may be a google storage URL (gs://)")
	flag.StringVar(&cfg.LabelPath, "target_test", "", "Optional. Sampling times (or other labels) for the test samples, in the 2nd column of a delimited file with a header. If empty, the original sample labels are kept.")
	flag.StringVar(&cfg.OutDir, "out_results", "results/example_ortholog_exp", "Directory to write the remapped expression matrix to. Optionally, may be a google storage URL (gs://)")
	flag.StringVar(&cfg.SpeciesName, "species_name", "new_species", "Name of the non-model species, used in messages and in the output file name")
	flag.StringVar(&missing, "missing", aggregate.SkipMissing.String(), "How missing values enter the average of genes that share an ortholog: 'skip' ignores them, 'propagate' makes the average missing")
	flag.StringVar(&delimiter, "delimiter", "", "Delimiter of the input files ('tab', 'comma', or a single character). If empty, it is detected from each file.")
	flag.Parse()

	var err error
	if cfg.Missing, err = aggregate.ParseMissingPolicy(missing); err != nil {
		flag.Usage()
		log.Fatalln(err)
	}

	if cfg.Delimiter, err = parseDelimiter(delimiter); err != nil {
		flag.Usage()
		log.Fatalln(err)
	}

	if cfg.OrthologList == "" || cfg.ExpressionPath == "" || cfg.OutDir == "" {
		flag.Usage()
		log.Fatalln("Must specify --ortholog_list, --x_test and --out_results")
	}

	for _, p := range []*string{&cfg.OrthologList, &cfg.ExpressionPath, &cfg.LabelPath, &cfg.OutDir} {
		if *p, err = orthoexpr.ExpandHome(*p); err != nil {
			log.Fatalln(err)
		}
	}

	initialCheck(cfg)

	var client *storage.Client
	if orthoexpr.IsGoogleStoragePath(cfg.OrthologList) ||
		orthoexpr.IsGoogleStoragePath(cfg.ExpressionPath) ||
		orthoexpr.IsGoogleStoragePath(cfg.LabelPath) ||
		orthoexpr.IsGoogleStoragePath(cfg.OutDir) {
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
	}

	outPath, err := run(cfg, client)
	if errors.Is(err, remap.ErrNoOverlap) {
		log.Printf("ERROR: zero genes intersect between the %s expression matrix (%s) and the ortholog list (%s). Terminated.\n", cfg.SpeciesName, cfg.ExpressionPath, cfg.OrthologList)
		os.Exit(1)
	} else if err != nil {
		log.Fatalln(err)
	}

	log.Println("Wrote", outPath)
}

// initialCheck summarizes the inputs before any work is done.
func initialCheck(cfg config) {
	log.Printf("Species name: %s\n", cfg.SpeciesName)
	log.Printf("Test expression matrix: mapping orthologs for %s\n", cfg.ExpressionPath)
	log.Printf("Ortholog list: genes will be mapped to orthologs in %s\n", cfg.OrthologList)
	if cfg.LabelPath == "" {
		log.Println("Test sample labels: none provided. Keeping the original labels of the expression matrix.")
	} else {
		log.Printf("Test sample labels: provided from %s\n", cfg.LabelPath)
	}
	log.Printf("Missing values in duplicated orthologs: %s\n", cfg.Missing)
}
