package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
)

var (
	versionsListJSON   bool
	versionsCreateNote string
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Manage a route's version history",
}

var versionsListCmd = &cobra.Command{
	Use:   "list [route-id]",
	Short: "List a route's versions, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersionsList,
}

var versionsCreateCmd = &cobra.Command{
	Use:   "create [route-id]",
	Short: "Snapshot the route's current state as a new version",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersionsCreate,
}

var versionsRevertCmd = &cobra.Command{
	Use:   "revert [route-id] [version-id]",
	Short: "Revert the route to a saved version",
	Args:  cobra.ExactArgs(2),
	RunE:  runVersionsRevert,
}

var versionsDeleteCmd = &cobra.Command{
	Use:   "delete [route-id] [version-id]",
	Short: "Delete a version from history",
	Args:  cobra.ExactArgs(2),
	RunE:  runVersionsDelete,
}

func init() {
	versionsListCmd.Flags().BoolVar(&versionsListJSON, "json", false, "output versions as JSON")
	versionsCreateCmd.Flags().StringVarP(&versionsCreateNote, "message", "m", "", "description of the save")
	versionsCmd.AddCommand(versionsListCmd)
	versionsCmd.AddCommand(versionsCreateCmd)
	versionsCmd.AddCommand(versionsRevertCmd)
	versionsCmd.AddCommand(versionsDeleteCmd)
	rootCmd.AddCommand(versionsCmd)
}

func runVersionsList(cmd *cobra.Command, args []string) error {
	if versionService == nil {
		return errors.New("version service not configured")
	}

	versions, err := versionService.List(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("listing versions: %w", err)
	}

	if versionsListJSON {
		return printJSON(cmd, versions)
	}

	if len(versions) == 0 {
		cmd.Println("No versions recorded.")
		return nil
	}
	for _, v := range versions {
		desc := v.Description
		if desc == "" {
			desc = "(no description)"
		}
		cmd.Printf("  %s  %s  %-12s %s\n",
			v.ID, v.Timestamp.Format("2006-01-02 15:04:05"), v.ChangeType, desc)
	}
	return nil
}

func runVersionsCreate(cmd *cobra.Command, args []string) error {
	if versionService == nil {
		return errors.New("version service not configured")
	}

	version, err := versionService.Create(context.Background(), args[0], domain.ChangeManual, versionsCreateNote)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("route %s not found", args[0])
		}
		return fmt.Errorf("creating version: %w", err)
	}

	cmd.Printf("Saved version %s for route %s\n", version.ID, args[0])
	return nil
}

func runVersionsRevert(cmd *cobra.Command, args []string) error {
	if versionService == nil {
		return errors.New("version service not configured")
	}

	route, err := versionService.Revert(context.Background(), args[0], args[1])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("route or version not found")
		}
		return fmt.Errorf("reverting route: %w", err)
	}

	cmd.Printf("Reverted %s to version %s (%d points, %.2fm)\n",
		route.Name, args[1], len(route.Points), route.Metrics.TotalLength)
	return nil
}

func runVersionsDelete(cmd *cobra.Command, args []string) error {
	if versionService == nil {
		return errors.New("version service not configured")
	}

	if err := versionService.Delete(context.Background(), args[0], args[1]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("version %s not found for route %s", args[1], args[0])
		}
		return fmt.Errorf("deleting version: %w", err)
	}

	cmd.Printf("Deleted version %s\n", args[1])
	return nil
}
