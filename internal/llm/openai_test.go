package llm

import (
	"strings"
	"testing"
)

func TestParseEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{
			name:    "plain array",
			content: `[{"author":"Albert Camus","title":"La Peste"}]`,
			want:    1,
		},
		{
			name: "fenced json block",
			content: "```json\n" +
				`[{"author":"Annie Ernaux","title":"Les Années","publisher":"Gallimard"}]` +
				"\n```",
			want: 1,
		},
		{
			name:    "bare fences",
			content: "```\n[]\n```",
			want:    0,
		},
		{
			name:    "title-less entries dropped",
			content: `[{"author":"Albert Camus","title":"La Peste"},{"author":"quelqu'un","title":"  "}]`,
			want:    1,
		},
		{
			name:    "not json",
			content: "je n'ai trouvé aucun livre",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := parseEntries(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatal("want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseEntries: %v", err)
			}
			if len(entries) != tt.want {
				t.Errorf("got %d entries, want %d", len(entries), tt.want)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("ce soir nous recevons Jakuta Alikavazovic")
	if !strings.Contains(prompt, "ce soir nous recevons Jakuta Alikavazovic") {
		t.Error("prompt missing transcript")
	}
	if !strings.Contains(prompt, "JSON") {
		t.Error("prompt missing output format instruction")
	}
}

func TestNewProvider(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("want error without an API key")
	}

	p, err := NewProvider(Config{Provider: "openai", APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if p == nil || p.Name() != "openai" {
		t.Errorf("provider = %v", p)
	}

	p, err = NewProvider(Config{Provider: ""})
	if err != nil || p != nil {
		t.Errorf("disabled provider = %v, %v, want nil, nil", p, err)
	}

	if _, err := NewProvider(Config{Provider: "mystery"}); err == nil {
		t.Error("want error for unknown provider")
	}
}
