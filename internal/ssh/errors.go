package ssh

import "errors"

// Error families
var (
	ErrSession         = errors.New("session error")
	ErrRemoteExecution = errors.New("remote execution error")
	ErrTransfer        = errors.New("transfer error")
)

// SSH connection errors
var (
	ErrNoAuthMethodProvided        = errors.New("no valid authentication method provided")
	ErrSSHConnectionNotEstablished = errors.New("SSH connection not established")
	ErrFailedToCreateAuth          = errors.New("failed to create auth")
	ErrFailedToCreateSSHClient     = errors.New("failed to create SSH client")
	ErrFailedToLoadKnownHosts      = errors.New("failed to load known hosts")
)

// Command execution errors
var (
	ErrFailedToCreateCommand = errors.New("failed to create command")
	ErrFailedToRunCommand    = errors.New("failed to run command")
)

// Transfer errors
var (
	ErrFailedToOpenSftp        = errors.New("failed to open sftp channel")
	ErrFailedToCreateRemoteDir = errors.New("failed to create remote directory")
	ErrFailedToUploadFile      = errors.New("failed to upload file")
	ErrLocalFileNotFound       = errors.New("local file not found")
)
