// Package config fills tagged structs from environment variables.
//
// A .env file in the working directory, if present, is loaded into the
// process environment on first use. Variables already set take precedence.
// Each struct type is parsed once; later Load calls for the same type return
// the cached copy.
//
//	var cfg google.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Parse skips the cache and is what tests and one-off tools should use.
package config
