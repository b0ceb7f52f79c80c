package deployconfig

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"wvdeploy/internal/logger"
)

// LoadFile reads the persisted configuration. A missing or unreadable file yields an
// empty FileConfig; only unparsable content is an error.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig

	data, err := os.ReadFile(path)

	if err != nil {
		logger.Debug("Configuration file %s not read: %v", path, err)
		return cfg, nil
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("%w: %w: %s:\n%v", ErrConfiguration, ErrMalformedConfigFile, path, err)
	}

	return cfg, nil
}

// DefaultsFromOS derives the username from the current OS user and the key path from
// the user's home directory.
func DefaultsFromOS() Defaults {
	defaults := Defaults{Port: 22}

	if u, err := user.Current(); err == nil {
		defaults.Username = u.Username
	} else {
		logger.Warn("Could not determine current user: %v", err)
	}

	if home, err := os.UserHomeDir(); err == nil {
		defaults.KeyPath = filepath.Join(home, ".ssh", "id_rsa")
	} else {
		logger.Warn("Could not determine home directory: %v", err)
	}

	return defaults
}

// ParseHostPort splits "host[:port]". A missing port yields defaultPort.
func ParseHostPort(hostPort string, defaultPort uint) (string, uint, error) {
	if !strings.Contains(hostPort, ":") || net.ParseIP(hostPort) != nil {
		return hostPort, defaultPort, nil
	}

	host, portStr, err := net.SplitHostPort(hostPort)

	if err != nil {
		return "", 0, fmt.Errorf("%w: %s: %v", ErrInvalidHost, hostPort, err)
	}

	if host == "" {
		return "", 0, fmt.Errorf("%w: %s: hostname cannot be empty", ErrInvalidHost, hostPort)
	}

	if portStr == "" {
		return host, defaultPort, nil
	}

	port, err := strconv.ParseUint(portStr, 10, 32)

	if err != nil || port == 0 || port > 65535 {
		return "", 0, fmt.Errorf("%w: invalid port number: %s", ErrInvalidHost, portStr)
	}

	return host, uint(port), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Resolve merges the sources with precedence command line > file > defaults and
// validates the required fields in the order host, root, user, name.
func Resolve(file FileConfig, overrides Overrides, defaults Defaults) (EffectiveConfig, error) {
	hostPort := firstNonEmpty(overrides.Host, file.Host)
	root := firstNonEmpty(overrides.Root, file.Root)
	username := firstNonEmpty(overrides.User, file.User, defaults.Username)
	keyPath := firstNonEmpty(overrides.Key, file.Key, defaults.KeyPath)

	if hostPort == "" {
		return EffectiveConfig{}, fmt.Errorf("%w: %w", ErrConfiguration, ErrMissingHost)
	}

	if root == "" {
		return EffectiveConfig{}, fmt.Errorf("%w: %w", ErrConfiguration, ErrMissingRoot)
	}

	if username == "" {
		return EffectiveConfig{}, fmt.Errorf("%w: %w", ErrConfiguration, ErrMissingUser)
	}

	if overrides.Name == "" {
		return EffectiveConfig{}, fmt.Errorf("%w: %w", ErrConfiguration, ErrMissingName)
	}

	defaultPort := defaults.Port
	if defaultPort == 0 {
		defaultPort = 22
	}

	host, port, err := ParseHostPort(hostPort, defaultPort)

	if err != nil {
		return EffectiveConfig{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return EffectiveConfig{
		Host:                 host,
		Port:                 port,
		Root:                 root,
		Username:             username,
		KeyPath:              keyPath,
		DeploymentName:       overrides.Name,
		BuildEnv:             overrides.Env,
		UseExistingArtifacts: overrides.Dist,
	}, nil
}
