package main

import (
	"fmt"
	"strings"

	"github.com/rowsift/rowsift"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func init() {
	// Bind command-line flags
	pflag.String("config", "", "Path to the configuration file")
	pflag.String("data-file", "", "Path to a JSON file holding the record collection")
	pflag.String("primary-key-field", "", "Field whose value identifies a record in results")
	pflag.Int("max-completion-values", 0, "Cap on distinct values collected per field")
	pflag.Bool("fields", false, "Print inferred field metadata instead of filtering")

	f := pflag.CommandLine
	normalizeFunc := f.GetNormalizeFunc()
	f.SetNormalizeFunc(func(fs *pflag.FlagSet, name string) pflag.NormalizedName {
		result := normalizeFunc(fs, name)
		name = strings.ReplaceAll(string(result), "-", "_")
		return pflag.NormalizedName(name)
	})
}

func LoadConfig() error {
	// Set default values
	viper.SetDefault("primary_key_field", "id")
	viper.SetDefault("max_completion_values", 50)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Parse command-line flags
	pflag.Parse()

	// Bind command-line flags to Viper
	viper.BindPFlags(pflag.CommandLine)

	// Bind environment variables
	viper.AutomaticEnv()

	// Read configuration file if specified
	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("cannot read config file %s: %v", configFile, err)
		}
	} else {
		viper.SetConfigName("rowsift.conf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc")
		// A missing default config file is fine; flags and env cover it.
		viper.ReadInConfig()
	}

	// Unmarshal configuration into struct
	var cfg rowsift.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unable to decode into struct, %v", err)
	}

	// Assign the loaded configuration to the global variable
	rowsift.Configure(cfg)

	return nil
}
