package deployconfig

// FileConfig mirrors the persisted JSON file. Every key is optional.
type FileConfig struct {
	Host string `json:"host,omitempty"`
	Root string `json:"root,omitempty"`
	User string `json:"user,omitempty"`
	Key  string `json:"key,omitempty"`
}

// Overrides holds values supplied on the command line. Empty strings mean "not given".
type Overrides struct {
	Host string
	Root string
	User string
	Key  string
	Env  string
	Dist bool
	Name string
}

// Defaults are the environment-derived fallbacks used when neither source has a value.
type Defaults struct {
	Username string
	KeyPath  string
	Port     uint
}

// EffectiveConfig is the merged parameter set for one run. It is passed by value and
// never modified after Resolve returns it.
type EffectiveConfig struct {
	Host                 string
	Port                 uint
	Root                 string
	Username             string
	KeyPath              string
	DeploymentName       string
	BuildEnv             string
	UseExistingArtifacts bool
}
