package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/asr-runtime/settings"
)

// RunFile describes a debug run.
//
//	segments: [Forest, Castle, Final boss]
//	settings:
//	  split_start: false
//	steps: 600
//	memory_limit_pages: 256
type RunFile struct {
	Segments         []string        `yaml:"segments"`
	Settings         map[string]bool `yaml:"settings"`
	Steps            int             `yaml:"steps"`
	MemoryLimitPages uint32          `yaml:"memory_limit_pages"`
}

// loadRunFile reads a run file. An empty path yields an empty RunFile.
func loadRunFile(path string) (RunFile, error) {
	var rf RunFile
	if path == "" {
		return rf, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return rf, fmt.Errorf("failed to read run file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return rf, fmt.Errorf("failed to parse run file %s: %w", path, err)
	}
	if rf.Steps < 0 {
		return rf, fmt.Errorf("run file %s: steps must not be negative", path)
	}
	return rf, nil
}

// parseSet parses a key=bool override.
func parseSet(s string) (key string, value bool, err error) {
	key, raw, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return "", false, fmt.Errorf("invalid setting %q, want key=bool", s)
	}
	value, err = strconv.ParseBool(raw)
	if err != nil {
		return "", false, fmt.Errorf("invalid setting %q: %w", s, err)
	}
	return key, value, nil
}

// buildStore fills a settings store from the run file, then applies the
// command line overrides in order.
func buildStore(rf RunFile, sets []string) (*settings.Store, error) {
	st := settings.NewStore()
	for k, v := range rf.Settings {
		st.SetBool(k, v)
	}
	for _, s := range sets {
		k, v, err := parseSet(s)
		if err != nil {
			return nil, err
		}
		st.SetBool(k, v)
	}
	return st, nil
}
