package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/pion/mediafilter"
	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the available frame sources",
	Run: func(cmd *cobra.Command, args []string) {
		runDevices(cmd)
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command) {
	devices := mediafilter.EnumerateDevices()
	if len(devices) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No devices found.")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tLABEL\tNAME")
	fmt.Fprintln(w, "--\t----\t-----\t----")
	for _, d := range devices {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.DeviceID, d.DeviceType, d.Label, d.Name)
	}
	w.Flush()
}
