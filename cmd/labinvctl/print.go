package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/vbonduro/labinv/internal/domain"
)

func printItems(w io.Writer, items []domain.ItemWithLocation) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "no items")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tNUMBER\tPRICE")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%.2f\n", it.ID, it.Name, it.Location, it.Number, it.Price)
	}
	return tw.Flush()
}

func printLocations(w io.Writer, locs []domain.Location, itemCount func(id int64) int) error {
	if len(locs) == 0 {
		_, err := fmt.Fprintln(w, "no locations")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tITEMS")
	for _, l := range locs {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", l.ID, l.Name, itemCount(l.ID))
	}
	return tw.Flush()
}
