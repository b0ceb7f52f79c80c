package ssh

import "time"

// Credentials describe key-based authentication against a single host.
type Credentials struct {
	Host     string
	Port     uint
	Username string
	// Key-based authentication
	PrivateKeyPath string
	// Passphrase for private key (if encrypted), e.g. from WVDEPLOY_KEY_PASSPHRASE
	Passphrase string
	// PassphrasePrompt is asked for a passphrase when the key is encrypted and
	// Passphrase is empty. Nil disables prompting.
	PassphrasePrompt func() (string, error)

	KnownHostsPath string
	Timeout        time.Duration
}

// CommandResult is the output of one remote command. ExitCode is informational; a
// non-zero code is not an error.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}
