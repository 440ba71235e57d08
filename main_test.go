package main

import (
	"testing"
	"time"
)

func TestRootCommandHasDiscover(t *testing.T) {
	root := newRootCommand()
	cmd, _, err := root.Find([]string{"discover"})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if cmd.Name() != "discover" {
		t.Fatalf("found %q, want discover", cmd.Name())
	}
}

func TestDiscoverTimeoutFlag(t *testing.T) {
	cmd := newDiscoverCommand()
	if err := cmd.Flags().Set("timeout", "250ms"); err != nil {
		t.Fatalf("set timeout: %v", err)
	}
	got, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		t.Fatalf("GetDuration: %v", err)
	}
	if got != 250*time.Millisecond {
		t.Fatalf("timeout = %v", got)
	}
}

func TestDiscoverRejectsArgs(t *testing.T) {
	cmd := newDiscoverCommand()
	if err := cmd.Args(cmd, []string{"extra"}); err == nil {
		t.Fatal("expected error for positional args")
	}
}
