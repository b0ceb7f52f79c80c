package commands

import (
	"io"

	"wvdeploy/cmd/wvdeploy/config"
	"wvdeploy/internal/deploy"
	"wvdeploy/internal/deployconfig"
	"wvdeploy/internal/logger"
	"wvdeploy/internal/ssh"
	"wvdeploy/internal/terminal"

	"github.com/google/uuid"
)

// UploadService resolves the configuration for one invocation and runs the deployment
// pipeline with the real build tool and SSH session.
type UploadService struct {
	Config           *config.Configuration
	PassphrasePrompt func() (string, error)
	Defaults         func() deployconfig.Defaults
}

// ResolveConfig merges the persisted file with the command-line overrides.
func (s *UploadService) ResolveConfig(overrides deployconfig.Overrides) (deployconfig.EffectiveConfig, error) {
	file, err := deployconfig.LoadFile(s.Config.ConfigFilePath)

	if err != nil {
		return deployconfig.EffectiveConfig{}, err
	}

	defaults := deployconfig.DefaultsFromOS
	if s.Defaults != nil {
		defaults = s.Defaults
	}

	d := defaults()
	d.Port = s.Config.SSHPort

	return deployconfig.Resolve(file, overrides, d)
}

func (s *UploadService) credentials(cfg deployconfig.EffectiveConfig) *ssh.Credentials {
	return &ssh.Credentials{
		Host:             cfg.Host,
		Port:             cfg.Port,
		Username:         cfg.Username,
		PrivateKeyPath:   cfg.KeyPath,
		Passphrase:       s.Config.KeyPassphrase,
		PassphrasePrompt: s.PassphrasePrompt,
		KnownHostsPath:   s.Config.KnownHostsPath,
		Timeout:          s.Config.SSHTimeout,
	}
}

func (s *UploadService) openSession(cfg deployconfig.EffectiveConfig) (deploy.Session, error) {
	service := ssh.NewService()

	err := service.Connect(s.credentials(cfg))

	if err != nil {
		return nil, err
	}

	return service, nil
}

func (s *UploadService) Upload(overrides deployconfig.Overrides, stdOut io.Writer, errOut io.Writer) error {
	cfg, err := s.ResolveConfig(overrides)

	if err != nil {
		return err
	}

	logger.SetRunID(uuid.NewString())
	defer logger.SetRunID("")

	logger.Debug("Deploying %s to %s@%s:%d under %s", cfg.DeploymentName, cfg.Username, cfg.Host, cfg.Port, cfg.Root)

	builder := &terminal.Builder{
		Command:  s.Config.BuildCommand,
		BaseArgs: s.Config.BuildArgs,
		Dir:      s.Config.BaseDir,
		StdOut:   stdOut,
		ErrOut:   errOut,
	}

	artifact := deploy.Artifact{
		LocalPath:   s.Config.ArtifactPath(),
		ArchiveName: s.Config.ArtifactName,
		ScaffoldDir: s.Config.ScaffoldDir,
		WebRootDir:  s.Config.WebRootDir,
	}

	return deploy.NewPipeline(builder, s.openSession, artifact, stdOut, errOut).Run(cfg)
}
