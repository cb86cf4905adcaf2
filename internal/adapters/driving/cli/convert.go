package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
)

var (
	convertScale float64
	convertSave  bool
	convertJSON  bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [sketch-file]",
	Short: "Convert sketched supply lines into cable routes",
	Long: `Converts the supply lines of a sketch export into engineered cable
routes with computed metrics. Lines that fail to convert are reported
individually; the rest convert normally.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().Float64Var(&convertScale, "scale", 0, "metres per sketch unit (overrides the sketch's calibration)")
	convertCmd.Flags().BoolVar(&convertSave, "save", false, "save converted routes and record an initial version")
	convertCmd.Flags().BoolVar(&convertJSON, "json", false, "output routes as JSON")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if converterService == nil {
		return errors.New("converter service not configured")
	}

	lines, scale, err := loadSketch(args[0])
	if err != nil {
		return err
	}
	if convertScale > 0 {
		scale.Ratio = convertScale
	}

	ctx := context.Background()
	routes, failures := converterService.ConvertLines(ctx, lines, scale)

	if convertSave {
		if routeStore == nil || versionService == nil {
			return errors.New("route store not configured")
		}
		for i := range routes {
			if err := routeStore.Save(ctx, routes[i]); err != nil {
				return fmt.Errorf("saving route %s: %w", routes[i].ID, err)
			}
			if _, err := versionService.Create(ctx, routes[i].ID, domain.ChangeManual, "Converted from sketch"); err != nil {
				return fmt.Errorf("recording initial version for route %s: %w", routes[i].ID, err)
			}
		}
	}

	if convertJSON {
		return outputConvertJSON(cmd, routes, failures)
	}
	return outputConvertTable(cmd, routes, failures)
}

func outputConvertJSON(cmd *cobra.Command, routes []domain.CableRoute, failures []domain.LineError) error {
	payload := struct {
		Routes   []domain.CableRoute
		Failures []string
	}{Routes: routes}
	for _, f := range failures {
		payload.Failures = append(payload.Failures, f.Error())
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal routes: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputConvertTable(cmd *cobra.Command, routes []domain.CableRoute, failures []domain.LineError) error {
	if len(routes) == 0 && len(failures) == 0 {
		cmd.Println("Nothing to convert.")
		return nil
	}

	for i := range routes {
		r := &routes[i]
		cmd.Printf("  %s  %s\n", r.ID, r.Name)
		cmd.Printf("      %s %.0fmm, %.2fm, %d bends, %d supports, %s complexity\n",
			r.CableType, r.Diameter, r.Metrics.TotalLength,
			r.Metrics.BendCount, r.Metrics.SupportCount, r.Metrics.Complexity)
	}

	if len(failures) > 0 {
		cmd.Println()
		cmd.Printf("%d line(s) failed to convert:\n", len(failures))
		for _, f := range failures {
			cmd.Printf("  %s\n", f.Error())
		}
	}
	return nil
}
