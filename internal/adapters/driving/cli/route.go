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
	routeListJSON bool
	routeShowJSON bool
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Manage saved cable routes",
}

var routeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved routes",
	RunE:  runRouteList,
}

var routeShowCmd = &cobra.Command{
	Use:   "show [route-id]",
	Short: "Show a route's points and metrics",
	Args:  cobra.ExactArgs(1),
	RunE:  runRouteShow,
}

var routeDeleteCmd = &cobra.Command{
	Use:   "delete [route-id]",
	Short: "Delete a route",
	Args:  cobra.ExactArgs(1),
	RunE:  runRouteDelete,
}

func init() {
	routeListCmd.Flags().BoolVar(&routeListJSON, "json", false, "output routes as JSON")
	routeShowCmd.Flags().BoolVar(&routeShowJSON, "json", false, "output the route as JSON")
	routeCmd.AddCommand(routeListCmd)
	routeCmd.AddCommand(routeShowCmd)
	routeCmd.AddCommand(routeDeleteCmd)
	rootCmd.AddCommand(routeCmd)
}

func runRouteList(cmd *cobra.Command, _ []string) error {
	if routeStore == nil {
		return errors.New("route store not configured")
	}

	routes, err := routeStore.List(context.Background())
	if err != nil {
		return fmt.Errorf("listing routes: %w", err)
	}

	if routeListJSON {
		return printJSON(cmd, routes)
	}

	if len(routes) == 0 {
		cmd.Println("No routes saved.")
		return nil
	}
	for i := range routes {
		r := &routes[i]
		cmd.Printf("  %s  %s (%.2fm, %s)\n", r.ID, r.Name, r.Metrics.TotalLength, r.CableType)
	}
	return nil
}

func runRouteShow(cmd *cobra.Command, args []string) error {
	if routeStore == nil {
		return errors.New("route store not configured")
	}

	route, err := routeStore.Get(context.Background(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("route %s not found", args[0])
		}
		return fmt.Errorf("loading route: %w", err)
	}

	if routeShowJSON {
		return printJSON(cmd, route)
	}

	cmd.Printf("%s  %s\n", route.ID, route.Name)
	cmd.Printf("  Cable:      %s, %.0fmm\n", route.CableType, route.Diameter)
	cmd.Printf("  Length:     %.2fm\n", route.Metrics.TotalLength)
	cmd.Printf("  Bends:      %d\n", route.Metrics.BendCount)
	cmd.Printf("  Supports:   %d\n", route.Metrics.SupportCount)
	cmd.Printf("  Complexity: %s\n", route.Metrics.Complexity)
	cmd.Println("  Points:")
	for _, p := range route.Points {
		cmd.Printf("    %-4s (%.2f, %.2f, %.2f)\n", p.ID, p.X, p.Y, p.Z)
	}
	return nil
}

func runRouteDelete(cmd *cobra.Command, args []string) error {
	if routeStore == nil {
		return errors.New("route store not configured")
	}

	if err := routeStore.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("deleting route: %w", err)
	}
	cmd.Printf("Deleted route %s\n", args[0])
	return nil
}

// printJSON renders any payload as indented JSON on the command's
// output stream.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
