package main

import (
	"testing"
)

func TestParseFlags(t *testing.T) {
	f, err := parseFlags([]string{
		"--mode", "light",
		"[SubsPlease] A - 01.mkv",
		"--device", "mobile",
		"--json",
		"[Judas] B - 02.mkv",
	})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if f.mode != "light" || f.device != "mobile" || !f.jsonOut {
		t.Errorf("flags = %+v, want mode=light device=mobile jsonOut=true", f)
	}
	if len(f.args) != 2 || f.args[0] != "[SubsPlease] A - 01.mkv" {
		t.Errorf("positional args = %v, want two release names", f.args)
	}
}

func TestParseFlagsRejectsUnknown(t *testing.T) {
	if _, err := parseFlags([]string{"--frobnicate"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestParseFlagsMissingValue(t *testing.T) {
	if _, err := parseFlags([]string{"--mode"}); err == nil {
		t.Error("expected error for flag without value")
	}
}

func TestBuildParserDisabledStatistical(t *testing.T) {
	t.Setenv("ZANTETSU_STATISTICAL", "false")
	resolved, err := resolve(cliFlags{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	p, err := buildParser(resolved)
	if err != nil {
		t.Fatalf("buildParser: %v", err)
	}
	if p.HasStatistical() {
		t.Error("statistical engine should be disabled")
	}
}
