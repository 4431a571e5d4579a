// Package config loads specgen settings from YAML or TOML files.
//
// Every field is optional; zero values are replaced with defaults after
// loading. Settings are converted into explicit values for the builder
// and checker rather than read from globals.
package config
