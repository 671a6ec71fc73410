package ai

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderPromptSubstitutesTranscript(t *testing.T) {
	out := RenderPrompt("Summarize this:\n{transcript}\nBe brief.", "hello world")
	if !strings.Contains(out, "hello world") {
		t.Fatalf("expected transcript in prompt, got %q", out)
	}
	if strings.Contains(out, TranscriptToken) {
		t.Fatalf("token must be replaced, got %q", out)
	}
}

func TestRenderPromptAppendsWhenTokenMissing(t *testing.T) {
	out := RenderPrompt("Summarize the meeting.", "the transcript text")
	if !strings.Contains(out, "Summarize the meeting.") {
		t.Fatalf("template dropped: %q", out)
	}
	if !strings.Contains(out, "the transcript text") {
		t.Fatalf("transcript must never be dropped, got %q", out)
	}
}

func TestRenderPromptEmptyTemplateUsesDefault(t *testing.T) {
	out := RenderPrompt("", "abc")
	if !strings.Contains(out, "Action Items:") {
		t.Fatalf("expected default template sections, got %q", out)
	}
	if !strings.Contains(out, "abc") {
		t.Fatalf("expected transcript in prompt, got %q", out)
	}
}

func TestLoadPromptTemplateDefault(t *testing.T) {
	tpl, err := LoadPromptTemplate("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tpl != DefaultPromptTemplate {
		t.Fatal("empty path must select the default template")
	}
}

func TestLoadPromptTemplateFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.yaml")
	content := "name: custom\ntemplate: |\n  Custom instructions.\n  {transcript}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	tpl, err := LoadPromptTemplate(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(tpl, "Custom instructions.") {
		t.Fatalf("expected custom template, got %q", tpl)
	}
	if !strings.Contains(tpl, TranscriptToken) {
		t.Fatalf("expected transcript token preserved, got %q", tpl)
	}
}

func TestLoadPromptTemplateMissingFile(t *testing.T) {
	if _, err := LoadPromptTemplate(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadPromptTemplateEmptyTemplateField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.yaml")
	if err := os.WriteFile(path, []byte("name: custom\n"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if _, err := LoadPromptTemplate(path); err == nil {
		t.Fatal("expected error for empty template field")
	}
}
