package ai

import (
	"context"
	"testing"

	"github.com/johnquangdev/meeting-scribe/errors"
)

func testLimits() InputLimits {
	return InputLimits{
		MaxBytes:       1024,
		AllowedFormats: []string{"mp3", "wav", "m4a", "flac"},
	}
}

func TestValidateAudio(t *testing.T) {
	audio := []byte("fake audio bytes")

	tests := []struct {
		name       string
		audio      []byte
		format     string
		wantFormat string
		wantErr    bool
	}{
		{"plain format", audio, "mp3", "mp3", false},
		{"uppercase", audio, "MP3", "mp3", false},
		{"leading dot", audio, ".wav", "wav", false},
		{"surrounding space", audio, " flac ", "flac", false},
		{"unknown format", audio, "ogg", "", true},
		{"empty format", audio, "", "", true},
		{"empty audio", nil, "mp3", "", true},
		{"too large", make([]byte, 2048), "mp3", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateAudio(tt.audio, tt.format, testLimits())
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.IsUnsupportedInput(err) {
					t.Fatalf("input rejections must be classified as such, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.wantFormat {
				t.Fatalf("expected normalized format %q, got %q", tt.wantFormat, got)
			}
		})
	}
}

func TestValidateAudioNoSizeLimit(t *testing.T) {
	limits := InputLimits{MaxBytes: 0, AllowedFormats: []string{"mp3"}}
	if _, err := ValidateAudio(make([]byte, 1<<20), "mp3", limits); err != nil {
		t.Fatalf("zero limit must disable the size check, got %v", err)
	}
}

func TestMockTranscriberReturnsSpeakerTranscript(t *testing.T) {
	mt := NewMockTranscriber(testLimits())

	tr, err := mt.Transcribe(context.Background(), []byte("audio"), "mp3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Text == "" {
		t.Fatal("expected transcript text")
	}
	if !tr.HasSpeakers() {
		t.Fatal("mock transcript must carry speaker utterances")
	}
	if tr.DurationSeconds <= 0 {
		t.Fatalf("expected positive duration, got %f", tr.DurationSeconds)
	}
}

func TestMockTranscriberRejectsBadInput(t *testing.T) {
	mt := NewMockTranscriber(testLimits())

	if _, err := mt.Transcribe(context.Background(), []byte("audio"), "pdf"); !errors.IsUnsupportedInput(err) {
		t.Fatalf("expected unsupported input, got %v", err)
	}
	if _, err := mt.Transcribe(context.Background(), nil, "mp3"); !errors.IsUnsupportedInput(err) {
		t.Fatalf("expected unsupported input, got %v", err)
	}
}

func TestMockTranscriberHonorsContext(t *testing.T) {
	mt := NewMockTranscriber(testLimits())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := mt.Transcribe(ctx, []byte("audio"), "mp3"); err == nil {
		t.Fatal("expected context error")
	}
}

func TestMockTranscriptCopyIsolation(t *testing.T) {
	mt := NewMockTranscriber(testLimits())

	first, err := mt.Transcribe(context.Background(), []byte("audio"), "mp3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	original := first.Utterances[0].Text
	first.Utterances[0].Text = "mutated"

	second, err := mt.Transcribe(context.Background(), []byte("audio"), "mp3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Utterances[0].Text != original {
		t.Fatal("fixture must not be affected by caller mutation")
	}
}

func TestAssemblyAITranscriberRejectsBeforeNetwork(t *testing.T) {
	// No server anywhere near this test: validation must fail first.
	cfg := AssemblyAIConfig{APIKey: "test-key", Language: "en", SpeakerLabels: true}
	tr := NewAssemblyAITranscriber(cfg, testLimits(), newTestExecutor(3), nil, nil)

	if _, err := tr.Transcribe(context.Background(), []byte("audio"), "exe"); !errors.IsUnsupportedInput(err) {
		t.Fatalf("expected unsupported input, got %v", err)
	}
	if _, err := tr.Transcribe(context.Background(), make([]byte, 4096), "mp3"); !errors.IsUnsupportedInput(err) {
		t.Fatalf("expected size rejection, got %v", err)
	}
}
