package spec

// Config is the on-disk sweep definition.
type Config struct {
	Version          int               `yaml:"version" toml:"version"`
	Benchmarks       []string          `yaml:"benchmarks" toml:"benchmarks"`
	Qubits           QubitRange        `yaml:"qubits" toml:"qubits"`
	AbstractionLevel string            `yaml:"abstraction_level" toml:"abstraction_level"`
	Params           []ParamsConfig    `yaml:"params" toml:"params"`
	CheckEquality    bool              `yaml:"check_equality" toml:"check_equality"`
	Verbose          bool              `yaml:"verbose" toml:"verbose"`
	Output           OutputConfig      `yaml:"output" toml:"output"`
	Generator        GeneratorConfig   `yaml:"generator" toml:"generator"`
	Constructor      ConstructorConfig `yaml:"constructor" toml:"constructor"`
}

// QubitRange is the half-open interval [Start, Stop).
type QubitRange struct {
	Start int `yaml:"start" toml:"start"`
	Stop  int `yaml:"stop" toml:"stop"`
}

type ParamsConfig struct {
	Label       string `yaml:"label" toml:"label"`
	StoreDD     bool   `yaml:"store_dd" toml:"store_dd"`
	StoreMatrix bool   `yaml:"store_matrix" toml:"store_matrix"`
	ReduceT     bool   `yaml:"reduce_t" toml:"reduce_t"`
}

type OutputConfig struct {
	Dir string `yaml:"dir" toml:"dir"`
	// Database is a duckdb:// or sqlite:// DSN. Empty disables the store.
	Database    string `yaml:"database" toml:"database"`
	MetricsFile bool   `yaml:"metrics_file" toml:"metrics_file"`
	ReportHTML  bool   `yaml:"report_html" toml:"report_html"`
	JSON        *bool  `yaml:"json" toml:"json"`
}

// WriteJSON reports whether results.json is written; it defaults to true.
func (o OutputConfig) WriteJSON() bool {
	return o.JSON == nil || *o.JSON
}

type GeneratorConfig struct {
	Type    string   `yaml:"type" toml:"type"`
	Dir     string   `yaml:"dir" toml:"dir"`
	Command []string `yaml:"command" toml:"command"`
	Seed    uint64   `yaml:"seed" toml:"seed"`
}

type ConstructorConfig struct {
	Type      string   `yaml:"type" toml:"type"`
	Command   []string `yaml:"command" toml:"command"`
	MaxQubits int      `yaml:"max_qubits" toml:"max_qubits"`
}
