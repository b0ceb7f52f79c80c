package deploy

import "errors"

// ErrDeployment wraps any failure raised by the session while the sequence runs.
var ErrDeployment = errors.New("deployment failed")

var (
	ErrArtifactMissing   = errors.New("build artifact not found")
	ErrInvalidTransition = errors.New("invalid state transition")
)
