// Package config provides the configuration abstraction used across the application. Values are read from
// the process environment, optionally seeded from .env files.
package config

type Config interface {
	Get(string) string
	GetOrDefault(string, string) string
}
