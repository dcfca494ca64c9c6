// Package config loads and validates application settings from defaults, an
// optional YAML file and TASKBOARD_-prefixed environment variables.
package config
