package terminal

import "errors"

// ErrBuild is the family every build failure wraps.
var ErrBuild = errors.New("build failed")

var (
	ErrBuildLaunch = errors.New("failed to launch build")
	ErrBuildFailed = errors.New("build exited with non-zero status")
)
