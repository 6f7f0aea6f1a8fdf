package cmd

import (
	"github.com/spf13/cobra"

	"github.com/FrogdreamStudios/launcher/pkg/game"
	"github.com/FrogdreamStudios/launcher/pkg/install"
	"github.com/FrogdreamStudios/launcher/pkg/natives"
	"github.com/FrogdreamStudios/launcher/pkg/protocol"
)

var installCmd = &cobra.Command{
	Use:   "install <version> <dir>",
	Short: "Install a game version under a directory",
	Args:  cobra.ExactArgs(2),
	RunE:  runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	versionID, root := args[0], args[1]

	fetcher := newFetcher()
	meta := newMetaClient(fetcher)
	resolver := newResolver()
	pc := newPatcherConfig()
	orch := install.NewOrchestrator(
		game.NewInstaller(meta, resolver, logger),
		natives.NewPatcher(pc, fetcher, logger),
		meta,
		resolver,
		pc.Classifier(),
		logger,
	)

	if err := orch.Install(cmd.Context(), root, versionID); err != nil {
		return err
	}
	printResult(protocol.OK())
	return nil
}
