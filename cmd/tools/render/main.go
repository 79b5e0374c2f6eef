// Command render normalizes an estimate payload file and prints the table
// with per-section and grand totals.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/buildledger/estimate-api/internal/estimate"
	"github.com/buildledger/estimate-api/internal/money"
	"github.com/buildledger/estimate-api/internal/source"
)

func main() {
	path := flag.String("file", "", "path to the raw estimate payload JSON")
	flag.Parse()
	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: render -file <payload.json>")
		os.Exit(2)
	}

	raw, err := source.FileClient{Path: *path}.Fetch(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "read payload: %v\n", err)
		os.Exit(1)
	}
	doc, err := estimate.Normalize(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "normalize payload: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Estimate %s\n\n", doc.EstimateNumber)
	for _, section := range doc.Sections {
		total := estimate.SectionTotal(section.Items)
		fmt.Printf("== %s Section  %s\n", section.Name, money.Format(&total))

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tITEM\tQTY\tUNIT COST\tUNIT\tTOTAL\tTAX\tCOST CODE")
		for _, it := range section.Items {
			itemType := it.Type
			if itemType == "" {
				itemType = "N/A"
			}
			name := it.TaskName
			if name == "" {
				name = "Unnamed Item"
			}
			tax := ""
			if it.TaxApplied {
				tax = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				itemType, name, it.Quantity.String(), money.Format(&it.UnitCost),
				it.Unit, money.Format(&it.Total), tax, it.CostCode)
		}
		_ = w.Flush()
		fmt.Println()
	}

	grand := estimate.GrandTotal(doc.Sections)
	fmt.Printf("Grand total: %s\n", money.Format(&grand))
}
