// Package config defines the crawl configuration and its validation.
//
// Configuration is a single flat struct populated from CLI flags and an
// optional YAML file, then passed through the application via dependency
// injection rather than global state. Defaults live here as documented
// package constants so every component shares one source of truth.
package config
