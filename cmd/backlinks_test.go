package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestBacklinksCmd_ListsReferrers(t *testing.T) {
	input := t.TempDir()
	writeNote(t, input, "alpha.md", "---\ntitle: Alpha\n---\n- sees [[Beta]]\n")
	writeNote(t, input, "beta.md", "---\ntitle: Beta\n---\n- has no links\n")

	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"backlinks", "--input", input, "beta.md"})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "alpha.md") {
		t.Errorf("expected backlinks output to mention alpha.md, got: %s", out.String())
	}
}

func TestBacklinksCmd_UnresolvedTarget_ReportsNoBacklinks(t *testing.T) {
	input := t.TempDir()
	writeNote(t, input, "alpha.md", "---\ntitle: Alpha\n---\n- lone bullet\n")

	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"backlinks", "--input", input, "nowhere"})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "no backlinks found") {
		t.Errorf("expected \"no backlinks found\", got: %s", out.String())
	}
}
