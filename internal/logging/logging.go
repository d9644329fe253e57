// Package logging builds the process logger. The hot tick path never logs;
// this is for the CLI surface: load warnings, store writes, fatal setup.
package logging

import "go.uber.org/zap"

// New returns a console logger, verbose when debug is set.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	return cfg.Build()
}
