package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
	"github.com/sitewire-labs/cableroute/internal/core/ports/driving"
	"github.com/sitewire-labs/cableroute/internal/core/services"
)

var (
	planFrom      string
	planTo        string
	planWidth     float64
	planHeight    float64
	planObstacles string
	planJSON      bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Find an obstacle-avoiding path across the routing plane",
	Long: `Runs the grid pathfinder between two plane points, avoiding the
no-route zones in the obstacles file. Prefers short, mostly orthogonal
runs; if no clear path exists the direct line is returned.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planFrom, "from", "", "start point as x,y (required)")
	planCmd.Flags().StringVar(&planTo, "to", "", "end point as x,y (required)")
	planCmd.Flags().Float64Var(&planWidth, "width", 1000, "plane width")
	planCmd.Flags().Float64Var(&planHeight, "height", 1000, "plane height")
	planCmd.Flags().StringVar(&planObstacles, "obstacles", "", "JSON file of rectangular no-route zones")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "output waypoints as JSON")
	_ = planCmd.MarkFlagRequired("from")
	_ = planCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	start, err := parsePlanePoint(planFrom)
	if err != nil {
		return fmt.Errorf("invalid --from: %w", err)
	}
	end, err := parsePlanePoint(planTo)
	if err != nil {
		return fmt.Errorf("invalid --to: %w", err)
	}

	var obstacles []driving.Obstacle
	if planObstacles != "" {
		obstacles, err = loadObstacles(planObstacles)
		if err != nil {
			return err
		}
	}

	ctx := context.Background()
	cfg, err := configStore.Engine(ctx)
	if err != nil {
		return fmt.Errorf("loading engine config: %w", err)
	}

	finder := services.NewGridPathfinder(planWidth, planHeight, obstacles, cfg.GridSize)
	path, err := finder.FindPath(ctx, start, end)
	if err != nil {
		return fmt.Errorf("planning path: %w", err)
	}

	if planJSON {
		return printJSON(cmd, path)
	}

	cmd.Printf("Path (%.2f units, %d waypoints):\n", domain.PolylineLength(path), len(path))
	for i, p := range path {
		cmd.Printf("  %2d  (%.0f, %.0f)\n", i+1, p.X, p.Y)
	}
	return nil
}

// parsePlanePoint parses "x,y" into a plane point.
func parsePlanePoint(s string) (domain.Point3D, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return domain.Point3D{}, fmt.Errorf("expected x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Point3D{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Point3D{}, err
	}
	return domain.Point3D{X: x, Y: y}, nil
}
