package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"wvdeploy/cmd/wvdeploy/commands"
	"wvdeploy/version"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wvdeploy [options] <name>",
		Short: "Build the web application and upload it to a deployment host",
		Long: `wvdeploy builds the web application (unless --dist is given), uploads the
resulting archive to <root>/<name> on the deployment host over SSH, and unpacks it
there so the web root ends up directly under <root>/<name>.

A previous deployment in the same directory is removed first, but only when its
archive is still present.`,
		Version: fmt.Sprintf("%s (commit: %s, date: %s)", version.Version, version.Commit, version.Date),
	}
}

// run executes the command line and returns the process exit status. Fatal errors are
// reported as a single "<prog>: error: <message>" line on errOut.
func run(prog string, args []string, stdOut io.Writer, errOut io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdOut)
	rootCmd.SetErr(errOut)

	commands.RegisterCommands(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(errOut, "%s: error: %v\n", prog, err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(run(filepath.Base(os.Args[0]), os.Args[1:], os.Stdout, os.Stderr))
}
