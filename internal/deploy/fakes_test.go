package deploy

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"wvdeploy/internal/deployconfig"
	"wvdeploy/internal/ssh"
)

type fakeBuilder struct {
	calls []string
	err   error
}

func (b *fakeBuilder) Build(env string) error {
	b.calls = append(b.calls, env)
	return b.err
}

// fakeSession records every operation in order.
type fakeSession struct {
	ops         []string
	execErrAt   int // 1-based index of the failing ExecuteCommand call, 0 for none
	transferErr error
	closeCount  int
	execCount   int
	result      ssh.CommandResult
}

func (s *fakeSession) ExecuteCommand(command string) (*ssh.CommandResult, error) {
	s.execCount++
	s.ops = append(s.ops, "exec "+command)

	if s.execErrAt == s.execCount {
		return nil, fmt.Errorf("%w: connection dropped", ssh.ErrRemoteExecution)
	}

	result := s.result
	return &result, nil
}

func (s *fakeSession) TransferFile(localPath string, remotePath string) error {
	s.ops = append(s.ops, "put "+localPath+" "+remotePath)
	return s.transferErr
}

func (s *fakeSession) Close() error {
	s.closeCount++
	s.ops = append(s.ops, "close")
	return nil
}

type fakeOpener struct {
	session *fakeSession
	err     error
	configs []deployconfig.EffectiveConfig
}

func (o *fakeOpener) Open(cfg deployconfig.EffectiveConfig) (Session, error) {
	o.configs = append(o.configs, cfg)
	if o.err != nil {
		return nil, o.err
	}
	return o.session, nil
}

// localSession runs commands through the local shell and copies files, standing in for
// a remote host whose filesystem is the test's temp dir.
type localSession struct {
	closed int
}

func (s *localSession) ExecuteCommand(command string) (*ssh.CommandResult, error) {
	cmd := exec.Command("sh", "-c", command)

	out, err := cmd.Output()
	result := &ssh.CommandResult{Stdout: string(out)}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, err
		}
		result.ExitCode = exitErr.ExitCode()
		result.Stderr = string(exitErr.Stderr)
	}

	return result, nil
}

func (s *localSession) TransferFile(localPath string, remotePath string) error {
	if err := os.MkdirAll(filepath.Dir(remotePath), 0o755); err != nil {
		return err
	}

	src, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(remotePath)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}

	return dst.Close()
}

func (s *localSession) Close() error {
	s.closed++
	return nil
}

func writeArtifact(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "site-worldview-debug.tar.bz2")

	if err := os.WriteFile(path, []byte("archive"), 0o600); err != nil {
		t.Fatalf("failed to write artifact: %v", err)
	}

	return path
}
