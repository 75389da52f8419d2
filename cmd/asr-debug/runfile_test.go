package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wippyai/asr-runtime/asr/asrtest"
	"github.com/wippyai/asr-runtime/session"
)

func TestLoadRunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	data := `segments: [Forest, Castle]
settings:
  split_start: false
  any_percent: true
steps: 30
memory_limit_pages: 64
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	rf, err := loadRunFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rf.Segments) != 2 || rf.Segments[1] != "Castle" {
		t.Errorf("segments = %v", rf.Segments)
	}
	if rf.Steps != 30 || rf.MemoryLimitPages != 64 {
		t.Errorf("steps = %d, pages = %d", rf.Steps, rf.MemoryLimitPages)
	}
	if v, ok := rf.Settings["split_start"]; !ok || v {
		t.Errorf("split_start = %v, %v", v, ok)
	}

	if rf, err := loadRunFile(""); err != nil || rf.Steps != 0 {
		t.Errorf("empty path = %+v, %v", rf, err)
	}
	if _, err := loadRunFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("steps: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadRunFile(bad); err == nil {
		t.Error("negative steps should fail")
	}
}

func TestParseSet(t *testing.T) {
	tests := []struct {
		in      string
		key     string
		value   bool
		wantErr bool
	}{
		{"split_start=false", "split_start", false, false},
		{"a=1", "a", true, false},
		{"a=TRUE", "a", true, false},
		{"a", "", false, true},
		{"=true", "", false, true},
		{"a=maybe", "", false, true},
	}
	for _, tt := range tests {
		key, value, err := parseSet(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSet(%q) error = %v", tt.in, err)
			continue
		}
		if key != tt.key || value != tt.value {
			t.Errorf("parseSet(%q) = %q, %v", tt.in, key, value)
		}
	}
}

func TestBuildStore_OverridesWin(t *testing.T) {
	rf := RunFile{Settings: map[string]bool{"a": true, "b": true}}
	st, err := buildStore(rf, []string{"a=false", "a=true", "b=false"})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := st.Bool("a"); !v {
		t.Error("a: last override should win")
	}
	if v, _ := st.Bool("b"); v {
		t.Error("b: override should beat the run file")
	}
	if _, err := buildStore(rf, []string{"bad"}); err == nil {
		t.Error("bad override should fail")
	}
}

func TestRunPlain(t *testing.T) {
	s := asrtest.New()
	s.Init(s.SetTickRate(1000))
	s.Update(
		asrtest.WhenState(0, asrtest.Call("timer_start")),
		s.PrintMessage("tick"),
	)
	ctx := context.Background()
	host := newDebugHost(nil)
	sess, err := session.OpenBytes(ctx, s.Bytes(), nil, host, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = sess.Close(ctx) }()

	var out bytes.Buffer
	if err := runPlain(ctx, &out, sess, host, 3); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(out.String(), "script: tick"); got != 3 {
		t.Errorf("script lines = %d, want 3\n%s", got, out.String())
	}
	if got := strings.Count(out.String(), "start"); got != 1 {
		t.Errorf("start events = %d, want 1\n%s", got, out.String())
	}
}

func TestPrintSettings(t *testing.T) {
	s := asrtest.New()
	s.Init(
		s.AddTitle("route", "Route", 0),
		s.AddBool("split_start", "Split on start", true),
		s.SetTooltip("split_start", "Splits when the run begins"),
	)
	s.Update()
	st, err := buildStore(RunFile{}, []string{"split_start=false", "split_ned=true", "boss=false"})
	if err != nil {
		t.Fatal(err)
	}
	overrides := st.Clone()
	ctx := context.Background()
	sess, err := session.OpenBytes(ctx, s.Bytes(), st, newDebugHost(nil), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = sess.Close(ctx) }()

	var out bytes.Buffer
	if err := printSettings(&out, sess, overrides); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"title/0", "split_start", "false (default true)", "Splits when the run begins",
		"Overrides matching no setting: boss, split_ned",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}
