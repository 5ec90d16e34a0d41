package sources

import (
	"testing"
)

func TestNeedsPoToken(t *testing.T) {
	if !needsPoToken("https://www.youtube.com/api/timedtext?v=x&exp=xpe&lang=en") {
		t.Error("expected PoToken required for &exp=xpe URL")
	}
	if needsPoToken("https://www.youtube.com/api/timedtext?v=x&lang=en") {
		t.Error("expected no PoToken for plain timedtext URL")
	}
}

func TestPickBestTrack(t *testing.T) {
	manual := func(lang string) captionTrack {
		return captionTrack{BaseURL: "https://yt/tt?lang=" + lang, LanguageCode: lang}
	}
	auto := func(lang string) captionTrack {
		return captionTrack{BaseURL: "https://yt/tt?lang=" + lang + "&kind=asr", LanguageCode: lang, Kind: "asr"}
	}
	blocked := func(lang string) captionTrack {
		return captionTrack{BaseURL: "https://yt/tt?lang=" + lang + "&exp=xpe", LanguageCode: lang}
	}

	tests := []struct {
		name     string
		tracks   []captionTrack
		langs    []string
		wantLang string
		wantKind string
		wantOK   bool
	}{
		{
			name:     "manual beats auto in same language",
			tracks:   []captionTrack{auto("en"), manual("en")},
			langs:    []string{"en"},
			wantLang: "en",
			wantKind: "",
			wantOK:   true,
		},
		{
			name:     "preferred language beats english",
			tracks:   []captionTrack{manual("en"), manual("de")},
			langs:    []string{"de", "en"},
			wantLang: "de",
			wantOK:   true,
		},
		{
			name:     "auto in preferred language when no manual",
			tracks:   []captionTrack{auto("en"), manual("fr")},
			langs:    []string{"en"},
			wantLang: "en",
			wantKind: "asr",
			wantOK:   true,
		},
		{
			name:     "english variant fallback",
			tracks:   []captionTrack{manual("ja"), manual("en-GB")},
			langs:    []string{"de"},
			wantLang: "en-GB",
			wantOK:   true,
		},
		{
			name:     "first track when nothing matches",
			tracks:   []captionTrack{manual("ja"), manual("ko")},
			langs:    []string{"de"},
			wantLang: "ja",
			wantOK:   true,
		},
		{
			name:     "potoken tracks skipped",
			tracks:   []captionTrack{blocked("en"), auto("en")},
			langs:    []string{"en"},
			wantLang: "en",
			wantKind: "asr",
			wantOK:   true,
		},
		{
			name:   "all tracks blocked",
			tracks: []captionTrack{blocked("en"), blocked("de")},
			langs:  []string{"en"},
			wantOK: false,
		},
		{
			name:   "no tracks",
			tracks: nil,
			langs:  []string{"en"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pickBestTrack(tt.tracks, tt.langs)
			if ok != tt.wantOK {
				t.Fatalf("pickBestTrack() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.LanguageCode != tt.wantLang {
				t.Errorf("pickBestTrack() lang = %q, want %q", got.LanguageCode, tt.wantLang)
			}
			if got.Kind != tt.wantKind {
				t.Errorf("pickBestTrack() kind = %q, want %q", got.Kind, tt.wantKind)
			}
		})
	}
}

func TestCleanTranscript(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "markup stripped and joined",
			lines: []string{"so <b>basically</b>", "we build", "agents"},
			want:  "so basically we build agents",
		},
		{
			name:  "consecutive duplicates dropped",
			lines: []string{"hello world", "hello world", "next line"},
			want:  "hello world next line",
		},
		{
			name:  "empty lines dropped",
			lines: []string{"", "first", "", "", "second"},
			want:  "first second",
		},
		{
			name:  "non-consecutive repeats kept",
			lines: []string{"a", "b", "a"},
			want:  "a b a",
		},
		{
			name:  "all empty",
			lines: []string{"", "  ", "<i></i>"},
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanTranscript(tt.lines); got != tt.want {
				t.Errorf("CleanTranscript() = %q, want %q", got, tt.want)
			}
		})
	}
}
