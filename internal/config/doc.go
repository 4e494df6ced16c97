// Package config loads and validates the TOML configuration for bindery.
//
// Configuration is resolved from an explicit --config path, then
// ~/.config/bindery/config.toml, then ./bindery.toml. Missing files fall back
// to defaults; the only hard requirement is the Naver API credential pair.
package config
