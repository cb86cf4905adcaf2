package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
)

var (
	checkCurrent  float64
	checkVoltage  float64
	checkRating   float64
	checkArmoured bool
	checkJSON     bool
)

var checkCmd = &cobra.Command{
	Use:   "check [route-id]",
	Short: "Check a route against the compliance rules",
	Long: `Evaluates every registered compliance rule against the route under
the given electrical load and reports the complete checklist,
including passes.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Float64Var(&checkCurrent, "current", 0, "design current in amperes (required)")
	checkCmd.Flags().Float64Var(&checkVoltage, "voltage", 230, "supply voltage in volts")
	checkCmd.Flags().Float64Var(&checkRating, "rating", 0, "cable current rating in amperes (required)")
	checkCmd.Flags().BoolVar(&checkArmoured, "armoured", false, "cable is armoured (applies installation derating)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "output checks as JSON")
	_ = checkCmd.MarkFlagRequired("current")
	_ = checkCmd.MarkFlagRequired("rating")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if complianceService == nil {
		return errors.New("compliance service not configured")
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

	params := domain.ElectricalParams{
		LoadCurrent: checkCurrent,
		Voltage:     checkVoltage,
		CableRating: checkRating,
		IsArmoured:  checkArmoured,
	}

	checks, err := complianceService.Evaluate(ctx, *route, params)
	if err != nil {
		return fmt.Errorf("evaluating compliance: %w", err)
	}

	if checkJSON {
		return printJSON(cmd, checks)
	}

	cmd.Printf("Compliance checklist for %s:\n", route.Name)
	for _, check := range checks {
		cmd.Printf("  [%-7s] %s: %s\n", check.Status, check.Regulation, check.Message)
		if check.Suggestion != "" {
			cmd.Printf("            %s\n", check.Suggestion)
		}
	}
	return nil
}
