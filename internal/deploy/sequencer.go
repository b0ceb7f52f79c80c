package deploy

import (
	"fmt"
	"io"

	"wvdeploy/internal/logger"
	"wvdeploy/internal/remotecmd"
	"wvdeploy/internal/ssh"
	"wvdeploy/internal/ui"
)

// Session is the remote channel the sequencer drives.
type Session interface {
	ExecuteCommand(command string) (*ssh.CommandResult, error)
	TransferFile(localPath string, remotePath string) error
	Close() error
}

// Sequencer issues the remote steps of one deployment, strictly in order.
type Sequencer struct {
	Commands     *remotecmd.Builder
	ArtifactPath string
	StdOut       io.Writer
	ErrOut       io.Writer

	// advance is called after each completed step.
	advance func(State) error
}

type step struct {
	title string
	state State
	run   func(Session) error
}

func (s *Sequencer) steps() []step {
	return []step{
		{"Preparing remote directory", DirectoryPrepared, func(session Session) error {
			return s.executeRendered(session, s.Commands.Prepare)
		}},
		{"Uploading artifact", ArtifactTransferred, func(session Session) error {
			return ui.Spin(s.ErrOut, "Uploading "+s.Commands.ArchiveName, func() error {
				return session.TransferFile(s.ArtifactPath, s.Commands.RemoteArchivePath())
			})
		}},
		{"Extracting archive", Extracted, func(session Session) error {
			return s.executeRendered(session, s.Commands.Extract)
		}},
		{"Relocating web root", Relocated, func(session Session) error {
			return s.executeRendered(session, s.Commands.Relocate)
		}},
	}
}

// Run performs every step over session. The first error aborts the sequence; nothing
// already applied on the host is rolled back.
func (s *Sequencer) Run(session Session) error {
	for _, st := range s.steps() {
		fmt.Fprintf(s.ErrOut, "%s\n", ui.Stage("==> "+st.title))

		if err := st.run(session); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrDeployment, st.title, err)
		}

		if s.advance != nil {
			if err := s.advance(st.state); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *Sequencer) executeRendered(session Session, render func() (string, error)) error {
	command, err := render()

	if err != nil {
		return err
	}

	fmt.Fprintf(s.ErrOut, "%s\n", ui.Detail("    $ "+command))

	result, err := session.ExecuteCommand(command)

	if err != nil {
		return err
	}

	io.WriteString(s.StdOut, result.Stdout)
	io.WriteString(s.ErrOut, result.Stderr)

	if result.ExitCode != 0 {
		logger.Debug("Remote command exited with status %d", result.ExitCode)
	}

	return nil
}
