package ssh

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"strings"
	"time"

	"wvdeploy/internal/logger"

	"github.com/melbahja/goph"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

const defaultTimeout = 10 * time.Second

// Service is one authenticated session to a deployment host
type Service struct {
	client *goph.Client
	creds  *Credentials
}

func NewService() *Service {
	return &Service{}
}

func loadSigner(creds *Credentials) (ssh.Signer, error) {
	if creds.PrivateKeyPath == "" {
		return nil, ErrNoAuthMethodProvided
	}

	keyBytes, err := os.ReadFile(creds.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateAuth, err)
	}

	if creds.Passphrase != "" {
		signer, err := ssh.ParsePrivateKeyWithPassphrase(keyBytes, []byte(creds.Passphrase))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToCreateAuth, err)
		}
		return signer, nil
	}

	signer, err := ssh.ParsePrivateKey(keyBytes)
	var missing *ssh.PassphraseMissingError
	if errors.As(err, &missing) && creds.PassphrasePrompt != nil {
		passphrase, promptErr := creds.PassphrasePrompt()
		if promptErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToCreateAuth, promptErr)
		}
		signer, err = ssh.ParsePrivateKeyWithPassphrase(keyBytes, []byte(passphrase))
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateAuth, err)
	}

	return signer, nil
}

func hostKeyCallback(knownHostsPath string) (ssh.HostKeyCallback, error) {
	if knownHostsPath != "" {
		if _, err := os.Stat(knownHostsPath); err == nil {
			callback, err := knownhosts.New(knownHostsPath)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrFailedToLoadKnownHosts, err)
			}
			return callback, nil
		}
	}

	logger.Warn("No known_hosts file found, host key will not be verified")

	return ssh.InsecureIgnoreHostKey(), nil
}

func (s *Service) Connect(creds *Credentials) error {
	signer, err := loadSigner(creds)

	if err != nil {
		return fmt.Errorf("%w: %w", ErrSession, err)
	}

	callback, err := hostKeyCallback(creds.KnownHostsPath)

	if err != nil {
		return fmt.Errorf("%w: %w", ErrSession, err)
	}

	timeout := creds.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	sshConfig := &ssh.ClientConfig{
		User:            creds.Username,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: callback,
		Timeout:         timeout,
	}

	port := creds.Port
	if port == 0 {
		port = 22
	}

	hostPort := net.JoinHostPort(creds.Host, fmt.Sprintf("%d", port))

	logger.Debug("Dialing %s as %s", hostPort, creds.Username)

	conn, err := net.DialTimeout("tcp", hostPort, sshConfig.Timeout)

	if err != nil {
		return fmt.Errorf("%w: %w: %v", ErrSession, ErrFailedToCreateSSHClient, err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, hostPort, sshConfig)

	if err != nil {
		conn.Close()
		return fmt.Errorf("%w: %w: %v", ErrSession, ErrFailedToCreateSSHClient, err)
	}

	client := ssh.NewClient(sshConn, chans, reqs)

	s.client = &goph.Client{Client: client}
	s.creds = creds
	return nil
}

// Close releases the session. Calling it more than once is a no-op.
func (s *Service) Close() error {
	if s.client == nil {
		return nil
	}

	err := s.client.Close()
	s.client = nil

	return err
}

// ExecuteCommand runs command through the remote shell. A non-zero remote exit code is
// reported in the result, not as an error.
func (s *Service) ExecuteCommand(command string) (*CommandResult, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteExecution, ErrSSHConnectionNotEstablished)
	}

	session, err := s.client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %v", ErrRemoteExecution, ErrFailedToCreateCommand, err)
	}
	defer session.Close()

	var stdout, stderr strings.Builder
	session.Stdout = &stdout
	session.Stderr = &stderr

	err = session.Run(command)

	result := &CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		// only a reported exit status means the command ran; a missing one is a dropped connection
		var exitErr *ssh.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %w: %v", ErrRemoteExecution, ErrFailedToRunCommand, err)
		}
		result.ExitCode = exitErr.ExitStatus()
	}

	logger.Debug("Remote command exited with %d", result.ExitCode)

	return result, nil
}

// TransferFile uploads localPath to remotePath, creating the remote parent directory
// when it does not exist.
func (s *Service) TransferFile(localPath string, remotePath string) error {
	if s.client == nil {
		return fmt.Errorf("%w: %w", ErrTransfer, ErrSSHConnectionNotEstablished)
	}

	local, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("%w: %w: %v", ErrTransfer, ErrLocalFileNotFound, err)
	}
	defer local.Close()

	ftp, err := s.client.NewSftp()
	if err != nil {
		return fmt.Errorf("%w: %w: %v", ErrTransfer, ErrFailedToOpenSftp, err)
	}
	defer ftp.Close()

	if err := ftp.MkdirAll(path.Dir(remotePath)); err != nil {
		return fmt.Errorf("%w: %w: %v", ErrTransfer, ErrFailedToCreateRemoteDir, err)
	}

	written, err := upload(ftp, local, remotePath)
	if err != nil {
		return fmt.Errorf("%w: %w: %v", ErrTransfer, ErrFailedToUploadFile, err)
	}

	logger.Debug("Uploaded %d bytes to %s", written, remotePath)

	return nil
}

func upload(ftp *sftp.Client, local io.Reader, remotePath string) (int64, error) {
	remote, err := ftp.Create(remotePath)
	if err != nil {
		return 0, err
	}

	written, err := io.Copy(remote, local)
	if err != nil {
		remote.Close()
		return written, err
	}

	return written, remote.Close()
}
