package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
)

var (
	clashesObjects string
	clashesJSON    bool
)

var clashesCmd = &cobra.Command{
	Use:   "clashes [route-id]",
	Short: "Detect clashes between a route and building elements",
	Long: `Tests the route's swept cable envelope against the building elements
in the objects file and reports every overlap with its severity and
penetration depth.`,
	Args: cobra.ExactArgs(1),
	RunE: runClashes,
}

func init() {
	clashesCmd.Flags().StringVar(&clashesObjects, "objects", "", "JSON file of building elements (required)")
	clashesCmd.Flags().BoolVar(&clashesJSON, "json", false, "output clashes as JSON")
	_ = clashesCmd.MarkFlagRequired("objects")
	rootCmd.AddCommand(clashesCmd)
}

func runClashes(cmd *cobra.Command, args []string) error {
	if clashService == nil {
		return errors.New("clash service not configured")
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

	objects, err := loadObjects(clashesObjects)
	if err != nil {
		return err
	}

	clashes, err := clashService.Detect(ctx, *route, objects)
	if err != nil {
		return fmt.Errorf("detecting clashes: %w", err)
	}

	if clashesJSON {
		return printJSON(cmd, clashes)
	}

	if len(clashes) == 0 {
		cmd.Printf("No clashes: %s is clear of %d object(s).\n", route.Name, len(objects))
		return nil
	}

	cmd.Printf("%d clash(es) on %s:\n", len(clashes), route.Name)
	for _, c := range clashes {
		cmd.Printf("  [%s] %s\n", c.Severity, c.Description)
		cmd.Printf("        at (%.2f, %.2f, %.2f)\n", c.Position.X, c.Position.Y, c.Position.Z)
	}
	return nil
}
