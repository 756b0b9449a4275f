package main

import (
	"log"

	"github.com/carbocation/orthoexpr/loader"
	"github.com/montanaflynn/stats"
)

func logReport(report loader.Report) {
	log.Printf("%d of %d ortholog pairs had a missing gene and were dropped\n", report.DroppedPairs, report.Pairs)
	log.Printf("%d genes are shared between the expression matrix and the ortholog list\n", report.SharedGenes)
	log.Printf("%d of %d expression rows had no ortholog and were dropped\n", report.UnmappedRows, report.InputRows)
	log.Printf("%d rows after mapping to orthologs, %d after averaging duplicated orthologs\n", report.OutputRows, report.AggregatedRows)

	collapsed := 0
	for _, size := range report.GroupSizes {
		if size > 1 {
			collapsed++
		}
	}

	data := stats.LoadRawData(report.GroupSizes)
	if data.Len() < 1 {
		return
	}

	meanSize, err := data.Mean()
	if err != nil {
		log.Println(err)
		return
	}
	maxSize, err := data.Max()
	if err != nil {
		log.Println(err)
		return
	}

	log.Printf("%d orthologs were averaged over duplicated rows (mean rows per ortholog: %.3f, max: %.0f)\n", collapsed, meanSize, maxSize)
}
