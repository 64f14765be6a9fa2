// Package config loads the todod YAML configuration file.
//
// Configuration supports ${VAR_NAME} environment variable expansion
// in the raw file content and human-readable duration strings for
// timeout fields. Load validates required fields and returns a fully
// parsed Config.
package config
