package cmd

import (
	"testing"
)

func TestRootCommand(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd is nil")
	}
	if rootCmd.Use != "curia" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "curia")
	}

	// Compare by Name(), not Use which includes args
	expectedCmds := []string{"debate", "config"}
	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}
	for _, name := range expectedCmds {
		if !cmdMap[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestDebateCommandFlags(t *testing.T) {
	if debateCmd.Flags().Lookup("topic") == nil {
		t.Error("debate command missing --topic flag")
	}
	if debateCmd.Flags().Lookup("seed") == nil {
		t.Error("debate command missing --seed flag")
	}
}

func TestValidBackend(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"canned", true},
		{"gemini", true},
		{"openai", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := validBackend(tt.value); got != tt.want {
			t.Errorf("validBackend(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestValidLevel(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"DEBUG", true},
		{"info", true},
		{"Warn", true},
		{"TRACE", false},
	}
	for _, tt := range tests {
		if got := validLevel(tt.value); got != tt.want {
			t.Errorf("validLevel(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
