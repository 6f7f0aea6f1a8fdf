package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FrogdreamStudios/launcher/cmd/launcher/internal/ui"
)

var listLimit int

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List available game versions",
	Args:  cobra.NoArgs,
	RunE:  runVersions,
}

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Print the full version manifest as JSON",
	Args:  cobra.NoArgs,
	RunE:  runManifest,
}

func init() {
	versionsCmd.Flags().IntVar(&listLimit, "limit", 20, "maximum number of versions to list")
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(manifestCmd)
}

func runVersions(cmd *cobra.Command, args []string) error {
	meta := newMetaClient(newFetcher())
	manifest, err := meta.VersionManifest(cmd.Context(), cfg.Root)
	if err != nil {
		return err
	}

	console := ui.NewUI()
	console.Header("Available versions")
	for i, v := range manifest.Versions {
		if listLimit > 0 && i >= listLimit {
			console.Subtle(fmt.Sprintf("  ... and %d more", len(manifest.Versions)-listLimit))
			break
		}
		console.Version(v.ID, v.Type)
	}
	return nil
}

// runManifest emits the whole manifest document, so a controller can
// consume it without a second metadata client of its own.
func runManifest(cmd *cobra.Command, args []string) error {
	meta := newMetaClient(newFetcher())
	manifest, err := meta.VersionManifest(cmd.Context(), cfg.Root)
	if err != nil {
		return err
	}

	data, err := json.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
