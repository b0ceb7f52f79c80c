package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"wvdeploy/internal/logger"

	"github.com/joho/godotenv"
)

func init() {
	envFiles := []string{
		".env",
	}

	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err != nil {
			if !os.IsNotExist(err) {
				logger.Warn("Error loading %s: %v", envFile, err)
			}
		}
	}
}

func GetEnv(key string, defaultValue string) string {
	value := os.Getenv(key)

	if value == "" {
		return defaultValue
	}

	return value
}

func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)

	if value == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(value)

	if err != nil {
		logger.Warn("Invalid duration in %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}

	return parsed
}

func getHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		logger.Warn("Could not determine home directory: %v", err)
		return ""
	}
	return homeDir
}

func getDefaultConfigFilePath() string {
	homeDir := getHomeDir()
	if homeDir == "" {
		return filepath.Join(".worldview", "upload.config")
	}
	return filepath.Join(homeDir, ".worldview", "upload.config")
}

func getDefaultKnownHostsPath() string {
	homeDir := getHomeDir()
	if homeDir == "" {
		return ""
	}
	return filepath.Join(homeDir, ".ssh", "known_hosts")
}

func getBuildCommand() string {
	if runtime.GOOS == "windows" {
		return "npm.cmd"
	}
	return "npm"
}

type Configuration struct {
	ConfigFilePath string
	KnownHostsPath string

	BaseDir      string
	DistDir      string
	ArtifactName string
	ScaffoldDir  string
	WebRootDir   string

	BuildCommand string
	BuildArgs    []string

	SSHPort       uint
	SSHTimeout    time.Duration
	KeyPassphrase string

	LogLevel string
}

// ArtifactPath is the local archive produced by the build.
func (c *Configuration) ArtifactPath() string {
	return filepath.Join(c.BaseDir, c.DistDir, c.ArtifactName)
}

var BaseDir = GetEnv("WVDEPLOY_BASE_DIR", ".")

var Config = &Configuration{
	ConfigFilePath: GetEnv("WVDEPLOY_CONFIG_FILE", getDefaultConfigFilePath()),
	KnownHostsPath: GetEnv("WVDEPLOY_KNOWN_HOSTS", getDefaultKnownHostsPath()),

	BaseDir:      BaseDir,
	DistDir:      "dist",
	ArtifactName: "site-worldview-debug.tar.bz2",
	ScaffoldDir:  "site-worldview-debug",
	WebRootDir:   "web",

	BuildCommand: getBuildCommand(),
	BuildArgs:    []string{"run", "build"},

	SSHPort:       22,
	SSHTimeout:    GetEnvDuration("WVDEPLOY_SSH_TIMEOUT", 10*time.Second),
	KeyPassphrase: os.Getenv("WVDEPLOY_KEY_PASSPHRASE"),

	LogLevel: GetEnv("WVDEPLOY_LOG_LEVEL", "INFO"),
}
