package common

import (
	"os"
	"runtime"
	"strings"
)

// Environment describes the runtime sandbox the fetcher operates in.
// Restricted hosts (shared cloud platforms, containers without a browser)
// cannot launch a headless browser, so page fetching falls back to plain HTTP.
type Environment string

const (
	EnvRestricted   Environment = "restricted"
	EnvUnrestricted Environment = "unrestricted"
)

// Classifier decides which environment the process is running in.
// The default implementation inspects well-known platform signals;
// tests substitute their own.
type Classifier interface {
	Classify() Environment
}

// ClassifierFunc adapts a plain function to the Classifier interface
type ClassifierFunc func() Environment

func (f ClassifierFunc) Classify() Environment { return f() }

// RuntimeSignals abstracts the process environment so that classification
// can be exercised in tests without manipulating real env vars
type RuntimeSignals struct {
	Getenv     func(string) string
	Getwd      func() (string, error)
	GOOS       string
	FileExists func(string) bool
}

// DefaultSignals reads from the real process environment
func DefaultSignals() RuntimeSignals {
	return RuntimeSignals{
		Getenv: os.Getenv,
		Getwd:  os.Getwd,
		GOOS:   runtime.GOOS,
		FileExists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
	}
}

// NewClassifier builds a classifier from configuration. A forced environment
// in config short-circuits detection entirely.
func NewClassifier(config *Config) Classifier {
	switch Environment(config.Environment) {
	case EnvRestricted:
		return ClassifierFunc(func() Environment { return EnvRestricted })
	case EnvUnrestricted:
		return ClassifierFunc(func() Environment { return EnvUnrestricted })
	default:
		signals := DefaultSignals()
		return ClassifierFunc(func() Environment { return ClassifyRuntime(signals) })
	}
}

// ClassifyRuntime inspects platform signals for hosts where a headless
// browser cannot run. Any single positive signal classifies the host as
// restricted; only a fully clean slate is unrestricted.
func ClassifyRuntime(signals RuntimeSignals) Environment {
	if signals.Getenv("STREAMLIT_SHARING_MODE") != "" || signals.Getenv("STREAMLIT_CLOUD") != "" {
		return EnvRestricted
	}
	if strings.Contains(signals.Getenv("HTTP_HOST"), "share.streamlit.io") {
		return EnvRestricted
	}
	if cwd, err := signals.Getwd(); err == nil && strings.Contains(cwd, "/app") {
		return EnvRestricted
	}
	if signals.GOOS == "linux" && !signals.FileExists("/usr/bin/google-chrome") {
		return EnvRestricted
	}
	if signals.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return EnvRestricted
	}
	if signals.Getenv("DYNO") != "" {
		return EnvRestricted
	}
	if signals.Getenv("RENDER") != "" {
		return EnvRestricted
	}
	return EnvUnrestricted
}
