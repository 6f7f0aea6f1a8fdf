package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/FrogdreamStudios/launcher/pkg/launch"
	"github.com/FrogdreamStudios/launcher/pkg/protocol"
)

var logsCmd = &cobra.Command{
	Use:   "logs <pid>",
	Short: "Report on a previously launched game process (best-effort)",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
	pid, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid pid %q", args[0])
	}

	status, err := launch.Inspect(pid)
	if err != nil {
		return err
	}
	printResult(protocol.Result{Success: true, PID: &status.PID, Message: status.Command})
	return nil
}
