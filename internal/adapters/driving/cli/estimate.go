package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
)

var (
	estimateTemplate string
	estimateJSON     bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate [route-id]",
	Short: "Produce a material takeoff and cost estimate for a route",
	Args:  cobra.ExactArgs(1),
	RunE:  runEstimate,
}

func init() {
	estimateCmd.Flags().StringVar(&estimateTemplate, "template", "", "cost template ID from the config file")
	estimateCmd.Flags().BoolVar(&estimateJSON, "json", false, "output the takeoff as JSON")
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	if estimatorService == nil {
		return errors.New("estimator service not configured")
	}
	if routeStore == nil {
		return errors.New("route store not configured")
	}

	ctx := context.Background()
	route, err := routeStore.Get(ctx, args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("route %s not found", args[0])
		}
		return fmt.Errorf("loading route: %w", err)
	}

	var template *domain.CostTemplate
	if estimateTemplate != "" {
		if configStore == nil {
			return errors.New("config store not configured")
		}
		template, err = configStore.Template(ctx, estimateTemplate)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("cost template %s not found", estimateTemplate)
			}
			return fmt.Errorf("loading cost template: %w", err)
		}
	}

	takeoff, err := estimatorService.Estimate(ctx, *route, template)
	if err != nil {
		return fmt.Errorf("estimating route: %w", err)
	}

	if estimateJSON {
		return printJSON(cmd, takeoff)
	}

	cmd.Printf("Takeoff for %s:\n", route.Name)
	cmd.Println()
	for _, m := range takeoff.Materials {
		cmd.Printf("  %-14s %8.2f %-2s @ %7.2f  %9.2f  %s\n",
			m.PartNumber, m.Quantity, m.Unit, m.UnitPrice, m.Total(), m.Description)
	}
	cmd.Println()
	cmd.Printf("  Materials:     %10.2f\n", takeoff.Breakdown.MaterialCost)
	cmd.Printf("  Supports:      %10.2f\n", takeoff.Breakdown.SupportsCost)
	cmd.Printf("  Installation:  %10.2f\n", takeoff.Breakdown.InstallationCost)
	cmd.Printf("  Labour:        %10.2f\n", takeoff.Breakdown.LaborCost)
	cmd.Printf("  Total:         %10.2f\n", takeoff.TotalCost)
	return nil
}
