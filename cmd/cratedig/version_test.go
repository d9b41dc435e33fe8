package main

import (
	"testing"
)

func TestVersionDefaults(t *testing.T) {
	if Version == "" {
		t.Error("Version must have a default")
	}
	if GitCommit == "" || BuildDate == "" {
		t.Error("Build metadata must have defaults")
	}
}

func TestRootCommandWiring(t *testing.T) {
	expected := []string{
		"search", "artist", "release", "master", "label",
		"user", "collection", "wantlist", "status", "history", "version",
	}

	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range expected {
		if !registered[name] {
			t.Errorf("Command %q is not registered", name)
		}
	}
}
