package deployconfig

import "errors"

// ErrConfiguration is the family every resolver failure wraps.
var ErrConfiguration = errors.New("configuration error")

// Resolution errors
var (
	ErrMalformedConfigFile = errors.New("malformed configuration file")
	ErrMissingHost         = errors.New("host not found in config file or command line")
	ErrMissingRoot         = errors.New("root not found in config file or command line")
	ErrMissingUser         = errors.New("user not found in config file or command line")
	ErrMissingName         = errors.New("name is required")
	ErrInvalidHost         = errors.New("invalid host")
)
