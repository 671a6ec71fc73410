package ai

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TranscriptToken is replaced with the formatted transcript when a prompt
// template is rendered.
const TranscriptToken = "{transcript}"

// SystemPrompt frames every summarization call.
const SystemPrompt = "You are an AI meeting assistant. You extract structured, concise meeting notes from transcripts. Never invent facts that are not in the transcript."

// DefaultPromptTemplate asks for the three sections the parser recognizes.
const DefaultPromptTemplate = `Analyze the meeting transcript below and produce exactly three sections.

Topics:
- one bullet per topic that was discussed

Decisions:
- one bullet per decision that was made

Action Items:
- one bullet per task; when the transcript mentions them, append markers in parentheses: (Owner: <name>, Due: <when>, Priority: low|medium|high)

Keep bullets short. If a section has no content, leave it empty.

Transcript:
{transcript}`

type promptFile struct {
	Name     string `yaml:"name"`
	Template string `yaml:"template"`
}

// LoadPromptTemplate reads a YAML prompt override. An empty path selects the
// default template.
func LoadPromptTemplate(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPromptTemplate, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read prompt template: %w", err)
	}

	var pf promptFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return "", fmt.Errorf("parse prompt template: %w", err)
	}
	if strings.TrimSpace(pf.Template) == "" {
		return "", fmt.Errorf("prompt template %q has an empty template field", path)
	}
	return pf.Template, nil
}

// RenderPrompt substitutes the transcript into the template. Templates
// without the token get the transcript appended so it is never dropped.
func RenderPrompt(template, transcript string) string {
	if template == "" {
		template = DefaultPromptTemplate
	}
	if strings.Contains(template, TranscriptToken) {
		return strings.ReplaceAll(template, TranscriptToken, transcript)
	}
	return template + "\n\nTranscript:\n" + transcript
}
