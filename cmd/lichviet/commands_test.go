package main

import "testing"

func TestParseFlags_DBFlag(t *testing.T) {
	f, err := parseFlags([]string{"--db", "/tmp/test.db", "họp", "nhóm"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if f.db != "/tmp/test.db" {
		t.Errorf("db = %q, want %q", f.db, "/tmp/test.db")
	}
	if len(f.rest) != 2 || f.rest[0] != "họp" || f.rest[1] != "nhóm" {
		t.Errorf("rest = %v, want [họp nhóm]", f.rest)
	}
}

func TestParseFlags_AllFlags(t *testing.T) {
	f, err := parseFlags([]string{
		"--db", "/tmp/a.db",
		"--vocab", "/tmp/tokenizer.json",
		"--day", "2025-03-11",
		"--interval", "30",
		"--verbose",
	})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if f.db != "/tmp/a.db" || f.vocab != "/tmp/tokenizer.json" ||
		f.day != "2025-03-11" || f.interval != "30" || !f.verbose {
		t.Errorf("flags = %+v", f)
	}
	if len(f.rest) != 0 {
		t.Errorf("rest = %v, want empty", f.rest)
	}
}

func TestParseFlags_MissingValue(t *testing.T) {
	if _, err := parseFlags([]string{"--db"}); err == nil {
		t.Error("expected error for --db without value")
	}
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	if _, err := parseFlags([]string{"--bogus", "x"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestParseFlags_TextOnly(t *testing.T) {
	f, err := parseFlags([]string{"họp", "lúc", "10", "giờ"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if len(f.rest) != 4 {
		t.Errorf("rest = %v, want 4 words", f.rest)
	}
}
