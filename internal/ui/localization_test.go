package ui

import "testing"

func TestLocalization_AllLanguagesComplete(t *testing.T) {
	l := NewLocalization()
	english := l.texts["en"]

	for lang := range l.GetAvailableLanguages() {
		texts, ok := l.texts[lang]
		if !ok {
			t.Errorf("Language %s has no texts", lang)
			continue
		}
		for key := range english {
			if texts[key] == "" {
				t.Errorf("Language %s is missing key %s", lang, key)
			}
		}
	}
}

func TestLocalization_SetLanguage(t *testing.T) {
	tests := []struct {
		lang     string
		expected string
	}{
		{"ru", "ru"},
		{"pt", "pt"},
		{"system", "en"},
		{"xx", "en"},
	}

	for _, tt := range tests {
		l := NewLocalization()
		l.SetLanguage(tt.lang)
		if got := l.GetCurrentLanguage(); got != tt.expected {
			t.Errorf("SetLanguage(%q): expected %s, got %s", tt.lang, tt.expected, got)
		}
	}
}

func TestLocalization_GetTextFallbacks(t *testing.T) {
	l := NewLocalization()
	l.SetLanguage("ru")

	if got := l.GetText(KeyDownload); got != "Скачать" {
		t.Errorf("Expected Russian text, got %s", got)
	}
	if got := l.GetText("missing_key"); got != "missing_key" {
		t.Errorf("Expected key fallback, got %s", got)
	}
}

func TestLocalization_Weekdays(t *testing.T) {
	l := NewLocalization()
	for lang := range l.GetAvailableLanguages() {
		l.SetLanguage(lang)
		days := l.Weekdays()
		if len(days) != 7 {
			t.Errorf("Language %s: expected 7 weekdays, got %d", lang, len(days))
		}
	}

	l.SetLanguage("en")
	if days := l.Weekdays(); days[0] != "Mo" || days[6] != "Su" {
		t.Errorf("Expected Mo..Su, got %v", days)
	}
}
