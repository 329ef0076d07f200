package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"rescueops-sim/internal/scenario"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the built-in scenario archetypes",
	RunE: func(cmd *cobra.Command, args []string) error {
		all := scenario.BuiltIn()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tTITLE\tHAZARD\tGPS\tVICTIMS")
		for _, n := range scenario.Names() {
			p := all[n]
			fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%d-%d\n", n, p.Title, p.Hazard, p.GPSAvailable, p.VictimCount.Min, p.VictimCount.Max)
		}
		return tw.Flush()
	},
}

func joinNames() string {
	return strings.Join(scenario.Names(), ", ")
}
