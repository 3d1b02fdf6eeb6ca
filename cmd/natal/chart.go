package main

import (
	"encoding/json"
	"fmt"

	"github.com/newthinker/natal/internal/app"
	"github.com/newthinker/natal/internal/chart"
	"github.com/spf13/cobra"
)

var chartReq chart.Request

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Calculate a single chart",
	Long: `Calculate the sun, moon and ascendant signs and the chart ruler for one
birth moment. Date and time are UT; longitude is positive east.`,
	Example: "  natal chart --year 2000 --month 1 --day 1 --hour 12 --minute 0 --latitude 28.6 --longitude 77.2",
	RunE:    runChart,
}

func init() {
	f := chartCmd.Flags()
	f.IntVar(&chartReq.Year, "year", 0, "year (required)")
	f.IntVar(&chartReq.Month, "month", 0, "month 1-12 (required)")
	f.IntVar(&chartReq.Day, "day", 0, "day of month (required)")
	f.IntVar(&chartReq.Hour, "hour", 0, "hour 0-23 UT (required)")
	f.IntVar(&chartReq.Minute, "minute", 0, "minute 0-59 (required)")
	f.Float64Var(&chartReq.Latitude, "latitude", 0, "latitude in degrees, north positive (required)")
	f.Float64Var(&chartReq.Longitude, "longitude", 0, "longitude in degrees, east positive (required)")

	for _, name := range []string{"year", "month", "day", "hour", "minute", "latitude", "longitude"} {
		chartCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}

	result, err := a.Calculate(cmd.Context(), chartReq)
	if err != nil {
		return fmt.Errorf("calculating chart: %w", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
