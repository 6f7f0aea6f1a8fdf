package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/FrogdreamStudios/launcher/pkg/launch"
	"github.com/FrogdreamStudios/launcher/pkg/protocol"
)

var launchCmd = &cobra.Command{
	Use:   "launch <username> <version> <dir> <gameDir>",
	Short: "Launch an installed game version",
	Args:  cobra.ExactArgs(4),
	RunE:  runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
}

// runLaunch exits with the child's own exit code. Failures before and
// during the spawn surface as protocol events, not as cobra errors, so
// the controller never sees two terminal objects for one launch.
func runLaunch(cmd *cobra.Command, args []string) error {
	username, versionID, root, gameDir := args[0], args[1], args[2], args[3]

	em := protocol.NewEmitter(os.Stdout)
	lc := launch.DefaultConfig()
	lc.JavaPath = cfg.Runtime.JavaPath
	lc.AltJavaPath = cfg.Runtime.AltJavaPath
	mgr := launch.NewManager(newResolver(), lc, em, logger)

	code, _ := mgr.Launch(cmd.Context(), username, versionID, root, gameDir)
	em.Close()
	os.Exit(code)
	return nil
}
