package commands

import (
	"errors"
	"fmt"
	"io"

	"wvdeploy/cmd/wvdeploy/config"
	"wvdeploy/internal/commands"
	"wvdeploy/internal/deployconfig"
	"wvdeploy/internal/logger"

	"github.com/spf13/cobra"
)

type uploader interface {
	Upload(overrides deployconfig.Overrides, stdOut io.Writer, errOut io.Writer) error
}

var uploadService uploader

var uploadFlags = deployconfig.Overrides{}

var errNameRequired = errors.New("name is required")

func uploadEpilog() string {
	return fmt.Sprintf(`
Defaults for "host", "key", "root", and "user" should be placed in a JSON
file found at "%s".

Values on the command line override those found in the configuration file.

If "host" or "root" is not found in the configuration file, it must
appear on the command line.`, config.Config.ConfigFilePath)
}

func requireName(_ *cobra.Command, args []string) error {
	if len(args) == 0 || args[0] == "" {
		return errNameRequired
	}
	if len(args) > 1 {
		return fmt.Errorf("expected exactly one name, got %d arguments", len(args))
	}
	return nil
}

func runUpload(cmd *cobra.Command, args []string) error {
	overrides := uploadFlags
	overrides.Name = args[0]

	return uploadService.Upload(overrides, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// RegisterCommands turns rootCmd into the upload command.
func RegisterCommands(rootCmd *cobra.Command) {
	logger.SetLevel(logger.ParseLevel(config.Config.LogLevel))

	uploadService = &commands.UploadService{
		Config: config.Config,
		PassphrasePrompt: func() (string, error) {
			return readPasswordSecurely("🔒 Enter SSH key passphrase: ", rootCmd.ErrOrStderr())
		},
	}

	registerFlags(rootCmd)
}

func registerFlags(rootCmd *cobra.Command) {
	uploadFlags = deployconfig.Overrides{}

	rootCmd.Args = requireName
	rootCmd.RunE = runUpload
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.SetUsageTemplate(rootCmd.UsageTemplate() + uploadEpilog() + "\n")

	flags := rootCmd.Flags()
	flags.BoolVarP(&uploadFlags.Dist, "dist", "d", false, "do not build, use artifacts found in dist directory")
	flags.StringVarP(&uploadFlags.Env, "env", "e", "", `configuration environment if not "release"`)
	flags.StringVarP(&uploadFlags.Host, "host", "h", "", "upload to this host (host[:port])")
	flags.StringVarP(&uploadFlags.Key, "key", "k", "", "path to private ssh key")
	flags.StringVarP(&uploadFlags.Root, "root", "r", "", "extract application to this directory")
	flags.StringVarP(&uploadFlags.User, "user", "u", "", "login to remote host using this user name")
}
