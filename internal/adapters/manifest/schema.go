package manifest

// manifestDTO mirrors the plank.yaml structure.
type manifestDTO struct {
	Package           string                `yaml:"package"`
	Source            string                `yaml:"source"`
	Lockfile          string                `yaml:"lockfile"`
	Toolchain         string                `yaml:"toolchain"`
	Extensions        []string              `yaml:"extensions"`
	Inputs            []string              `yaml:"inputs"`
	ConditionalInputs []conditionalInputDTO `yaml:"conditionalInputs"`
	Dependencies      []string              `yaml:"dependencies"`
	Tooling           []string              `yaml:"tooling"`
	Actions           []actionDTO           `yaml:"actions"`
	Metadata          metadataDTO           `yaml:"metadata"`
}

type conditionalInputDTO struct {
	When   string   `yaml:"when"`
	Inputs []string `yaml:"inputs"`
}

type actionDTO struct {
	Run string `yaml:"run"`
}

type metadataDTO struct {
	Description string `yaml:"description"`
	Homepage    string `yaml:"homepage"`
	License     string `yaml:"license"`
	Program     string `yaml:"program"`
}
