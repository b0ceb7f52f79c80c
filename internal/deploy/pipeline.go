package deploy

import (
	"fmt"
	"io"
	"os"

	"wvdeploy/internal/deployconfig"
	"wvdeploy/internal/logger"
	"wvdeploy/internal/remotecmd"
	"wvdeploy/internal/ssh"
	"wvdeploy/internal/ui"
)

// Builder produces the local artifact.
type Builder interface {
	Build(env string) error
}

// SessionOpener establishes the remote session for a resolved configuration.
type SessionOpener func(cfg deployconfig.EffectiveConfig) (Session, error)

// Artifact names the local archive and its layout once extracted.
type Artifact struct {
	LocalPath   string
	ArchiveName string
	ScaffoldDir string
	WebRootDir  string
}

// Pipeline runs build, connect and sequence for one invocation.
type Pipeline struct {
	Builder  Builder
	Open     SessionOpener
	Artifact Artifact
	StdOut   io.Writer
	ErrOut   io.Writer

	state   State
	history []State
	failure error
}

func NewPipeline(builder Builder, open SessionOpener, artifact Artifact, stdOut io.Writer, errOut io.Writer) *Pipeline {
	return &Pipeline{
		Builder:  builder,
		Open:     open,
		Artifact: artifact,
		StdOut:   stdOut,
		ErrOut:   errOut,
		state:    Unresolved,
		history:  []State{Unresolved},
	}
}

func (p *Pipeline) State() State {
	return p.state
}

// History lists every state the pipeline has passed through, in order.
func (p *Pipeline) History() []State {
	return append([]State{}, p.history...)
}

// Failure is the reason for a Failed state, or nil.
func (p *Pipeline) Failure() error {
	return p.failure
}

func (p *Pipeline) advance(to State) error {
	if !CanTransition(p.state, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.state, to)
	}

	logger.Debug("State %s -> %s", p.state, to)

	p.state = to
	p.history = append(p.history, to)

	return nil
}

func (p *Pipeline) fail(err error) error {
	if !p.state.Terminal() {
		p.state = Failed
		p.history = append(p.history, Failed)
	}

	p.failure = err

	logger.Debug("Pipeline failed: %v", err)

	return err
}

// Run executes the pipeline for cfg. The session, once opened, is closed exactly once
// whether the sequence succeeds or fails.
func (p *Pipeline) Run(cfg deployconfig.EffectiveConfig) error {
	commands, err := remotecmd.NewBuilder(cfg.Root, cfg.DeploymentName, p.Artifact.ArchiveName, p.Artifact.ScaffoldDir, p.Artifact.WebRootDir)

	if err != nil {
		return p.fail(fmt.Errorf("%w: %w", deployconfig.ErrConfiguration, err))
	}

	if err := p.advance(ConfigResolved); err != nil {
		return p.fail(err)
	}

	if cfg.UseExistingArtifacts {
		logger.Info("Using existing artifacts in %s", p.Artifact.LocalPath)

		if err := p.advance(BuildSkipped); err != nil {
			return p.fail(err)
		}
	} else {
		if err := p.Builder.Build(cfg.BuildEnv); err != nil {
			return p.fail(err)
		}

		if err := p.advance(BuildSucceeded); err != nil {
			return p.fail(err)
		}
	}

	if _, statErr := os.Stat(p.Artifact.LocalPath); statErr != nil {
		return p.fail(fmt.Errorf("%w: %w: %s", ssh.ErrTransfer, ErrArtifactMissing, p.Artifact.LocalPath))
	}

	fmt.Fprintf(p.ErrOut, "%s\n", ui.Stage(fmt.Sprintf("==> Connecting to %s@%s:%d", cfg.Username, cfg.Host, cfg.Port)))

	session, err := p.Open(cfg)

	if err != nil {
		return p.fail(err)
	}

	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			logger.Warn("Failed to close session: %v", closeErr)
		}
	}()

	if err := p.advance(SessionOpen); err != nil {
		return p.fail(err)
	}

	sequencer := &Sequencer{
		Commands:     commands,
		ArtifactPath: p.Artifact.LocalPath,
		StdOut:       p.StdOut,
		ErrOut:       p.ErrOut,
		advance:      p.advance,
	}

	if err := sequencer.Run(session); err != nil {
		return p.fail(err)
	}

	if err := p.advance(Done); err != nil {
		return p.fail(err)
	}

	fmt.Fprintf(p.ErrOut, "%s\n", ui.Success(fmt.Sprintf("Deployed %s to %s:%s", cfg.DeploymentName, cfg.Host, commands.TargetDir)))

	return nil
}
