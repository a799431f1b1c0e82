package rowsift

// Config holds the configuration settings for the engine and the CLI.
type Config struct {
	// Field whose value identifies a record in query results.
	PrimaryKeyField string `mapstructure:"primary_key_field"`

	// Path to a JSON file holding the record collection (CLI only).
	DataFile string `mapstructure:"data_file"`

	// Cap on distinct values collected per field for editor completion.
	MaxCompletionValues int `mapstructure:"max_completion_values"`
}

var globalConfig Config

func init() {
	globalConfig = Config{
		PrimaryKeyField:     "id",
		MaxCompletionValues: 50,
	}
}

// Configure replaces the global configuration. Zero values fall back to
// the defaults.
func Configure(cfg Config) {
	if cfg.PrimaryKeyField == "" {
		cfg.PrimaryKeyField = "id"
	}
	if cfg.MaxCompletionValues == 0 {
		cfg.MaxCompletionValues = 50
	}
	globalConfig = cfg
}
