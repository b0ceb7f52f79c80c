package remotecmd

import "errors"

var (
	ErrInvalidName = errors.New("invalid deployment name")
	ErrInvalidRoot = errors.New("invalid root path")
)
