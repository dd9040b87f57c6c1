package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pion/mediafilter/pkg/filter"
	"github.com/spf13/cobra"
)

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List the filters and their parameter ranges",
	Run: func(cmd *cobra.Command, args []string) {
		runFilters(cmd)
	},
}

func init() {
	rootCmd.AddCommand(filtersCmd)
}

func runFilters(cmd *cobra.Command) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "FILTER\tPARAMETER\tMIN\tMAX\tDEFAULT")
	fmt.Fprintln(w, "------\t---------\t---\t---\t-------")
	fmt.Fprintf(w, "%s\t-\t-\t-\t-\n", filter.IDOriginal)
	for _, r := range filter.Ranges() {
		if len(r.Choices) > 0 {
			fmt.Fprintf(w, "%s\t%s\t%s\t\t%s\n", r.Filter, r.Name,
				strings.Join(r.Choices, "|"), r.Choices[int(r.Default)])
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Filter, r.Name,
			formatBound(r.Min), formatBound(r.Max), formatBound(r.Default))
	}
	w.Flush()
}

func formatBound(v float64) string {
	if math.IsInf(v, 0) {
		return "-"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
