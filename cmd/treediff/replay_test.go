package main

import (
	"bytes"
	"testing"
)

func TestParseScript_RequiresHTML(t *testing.T) {
	_, err := parseScript([]byte(`{"ops":[]}`))
	if err == nil {
		t.Fatalf("expected error for missing html")
	}
}

func TestParseScript_Basic(t *testing.T) {
	s, err := parseScript([]byte(`{"html":"<p id=\"a\">hi</p>","ops":[{"op":"setAttribute","node":"a","key":"class","value":"big"}]}`))
	if err != nil {
		t.Fatalf("parseScript: %v", err)
	}
	if s.HTML != `<p id="a">hi</p>` {
		t.Fatalf("unexpected html: %q", s.HTML)
	}
	if len(s.Ops) != 1 || s.Ops[0].Op != "setAttribute" {
		t.Fatalf("unexpected ops: %+v", s.Ops)
	}
}

func TestParseFilter(t *testing.T) {
	for _, name := range []string{"", "all", "children", "attribute", "data", "custom", "property"} {
		if _, err := parseFilter(name); err != nil {
			t.Errorf("parseFilter(%q): %v", name, err)
		}
	}
	if _, err := parseFilter("bogus"); err == nil {
		t.Errorf("expected error for unknown filter name")
	}
}

func TestReplay_SetAttributeIsTracked(t *testing.T) {
	s, err := parseScript([]byte(`{"html":"<p id=\"a\" class=\"old\">hi</p>","ops":[{"op":"setAttribute","node":"a","key":"class","value":"new"}]}`))
	if err != nil {
		t.Fatalf("parseScript: %v", err)
	}
	result, err := replay(s, false)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !result.tracker.Mutated() {
		t.Fatalf("expected tracker to report mutated")
	}
}

func TestReplay_RemoveIsTracked(t *testing.T) {
	s, err := parseScript([]byte(`{"html":"<p id=\"a\">hi</p><p id=\"b\">bye</p>","ops":[{"op":"remove","node":"b"}]}`))
	if err != nil {
		t.Fatalf("parseScript: %v", err)
	}
	result, err := replay(s, false)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !result.tracker.Mutated() {
		t.Fatalf("expected tracker to report mutated after remove")
	}
}

func TestReplay_UnknownOpFails(t *testing.T) {
	s, err := parseScript([]byte(`{"html":"<p id=\"a\">hi</p>","ops":[{"op":"frobnicate","node":"a"}]}`))
	if err != nil {
		t.Fatalf("parseScript: %v", err)
	}
	if _, err := replay(s, false); err == nil {
		t.Fatalf("expected error for unknown op")
	}
}

func TestPrintResult_ReportsMutatedAndDiff(t *testing.T) {
	s, err := parseScript([]byte(`{"html":"<p id=\"a\" class=\"old\">hi</p>","ops":[{"op":"setAttribute","node":"a","key":"class","value":"new"}]}`))
	if err != nil {
		t.Fatalf("parseScript: %v", err)
	}
	result, err := replay(s, false)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	filter, err := parseFilter("attribute")
	if err != nil {
		t.Fatalf("parseFilter: %v", err)
	}

	var buf bytes.Buffer
	if err := printResult(&buf, result, filter, false); err != nil {
		t.Fatalf("printResult: %v", err)
	}
	out := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte("mutated: true")) {
		t.Errorf("expected mutated: true in output, got %q", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`attribute class was "old"`)) {
		t.Errorf("expected old attribute value reported, got %q", out)
	}
}

func TestDumpTree_ReflectsFinalChildren(t *testing.T) {
	s, err := parseScript([]byte(`{"html":"<p id=\"a\">hi</p><p id=\"b\">bye</p>","ops":[{"op":"remove","node":"a"}]}`))
	if err != nil {
		t.Fatalf("parseScript: %v", err)
	}
	result, err := replay(s, false)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}

	out := dumpTree(result.root.AsNode())
	if bytes.Contains([]byte(out), []byte("id=a")) {
		t.Errorf("expected removed node a to be absent from the tree dump, got %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("id=b")) {
		t.Errorf("expected surviving node b in the tree dump, got %q", out)
	}
}

func TestNewRootCmd_RunRequiresArg(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"run"})
	cmd.SilenceErrors = true
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error when no script path is given")
	}
}
