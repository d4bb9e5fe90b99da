package speech

import (
	"testing"

	"github.com/matzehuels/uhrzeit/pkg/errors"
)

func TestPhraseGerman(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         string
	}{
		{6, 0, "Es ist 6 Uhr"},
		{18, 0, "Es ist 18 Uhr"},
		{0, 0, "Es ist 0 Uhr"},
		{6, 15, "Es ist viertel nach 6"},
		{18, 15, "Es ist viertel nach 6"},
		{6, 30, "Es ist halb 7"},
		{12, 30, "Es ist halb 1"},
		{0, 30, "Es ist halb 1"},
		{6, 45, "Es ist viertel vor 7"},
		{11, 45, "Es ist viertel vor 12"},
		{6, 7, "Es ist 6 Uhr 7"},
		{14, 20, "Es ist 14 Uhr 20"},
	}
	for _, tt := range tests {
		if got := Phrase(tt.hour, tt.minute, German); got != tt.want {
			t.Errorf("Phrase(%d, %d, de) = %q, want %q", tt.hour, tt.minute, got, tt.want)
		}
	}
}

func TestPhraseEnglish(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         string
	}{
		{6, 0, "It's 6 o'clock AM"},
		{0, 0, "It's 12 o'clock AM"},
		{12, 0, "It's 12 o'clock PM"},
		{18, 30, "It's 6 30 PM"},
		{9, 5, "It's 9 5 AM"},
	}
	for _, tt := range tests {
		if got := Phrase(tt.hour, tt.minute, English); got != tt.want {
			t.Errorf("Phrase(%d, %d, en) = %q, want %q", tt.hour, tt.minute, got, tt.want)
		}
	}
}

func TestResolveLanguage(t *testing.T) {
	tests := []struct {
		setting  Setting
		reported string
		want     Language
	}{
		{SettingGerman, "en_US.UTF-8", German},
		{SettingEnglish, "de_DE.UTF-8", English},
		{SettingAuto, "de_DE.UTF-8", German},
		{SettingAuto, "de-AT", German},
		{SettingAuto, "de", German},
		{SettingAuto, "en_GB.UTF-8", English},
		{SettingAuto, "fr-FR", English},
		{SettingAuto, "", German},
		{SettingAuto, " ", German},
	}
	for _, tt := range tests {
		if got := ResolveLanguage(tt.setting, tt.reported); got != tt.want {
			t.Errorf("ResolveLanguage(%q, %q) = %q, want %q", tt.setting, tt.reported, got, tt.want)
		}
	}
}

func TestParseSetting(t *testing.T) {
	for in, want := range map[string]Setting{"": SettingAuto, "AUTO": SettingAuto, " de ": SettingGerman, "en": SettingEnglish} {
		got, err := ParseSetting(in)
		if err != nil || got != want {
			t.Errorf("ParseSetting(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseSetting("fr"); !errors.Is(err, errors.ErrCodeInvalidLanguage) {
		t.Errorf("ParseSetting(fr) error = %v, want INVALID_LANGUAGE", err)
	}
}

func TestNewUtterance(t *testing.T) {
	u := NewUtterance(6, 30, SettingAuto, "de_DE.UTF-8")
	if u.Text != "Es ist halb 7" || u.Locale != "de-DE" || u.Rate != DefaultRate {
		t.Errorf("NewUtterance = %+v", u)
	}
	u = NewUtterance(6, 30, SettingEnglish, "de_DE.UTF-8")
	if u.Locale != "en-US" {
		t.Errorf("Locale = %q, want en-US", u.Locale)
	}
}

func TestSystemLanguage(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "C")
	t.Setenv("LANG", "de_DE.UTF-8")
	if got := SystemLanguage(); got != "de_DE.UTF-8" {
		t.Errorf("SystemLanguage() = %q", got)
	}
	t.Setenv("LC_ALL", "en_US.UTF-8")
	if got := SystemLanguage(); got != "en_US.UTF-8" {
		t.Errorf("SystemLanguage() = %q, LC_ALL should win", got)
	}
}

func TestExecArgs(t *testing.T) {
	u := Utterance{Text: "Es ist 6 Uhr", Locale: "de-DE", Rate: 0.9}

	espeak := &ExecSynthesizer{Path: "/usr/bin/espeak-ng"}
	got := espeak.args(u)
	want := []string{"-v", "de", "-s", "157", "Es ist 6 Uhr"}
	if len(got) != len(want) {
		t.Fatalf("args = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	say := &ExecSynthesizer{Path: "/usr/bin/say"}
	if got := say.args(u); got[0] != "-r" || got[len(got)-1] != u.Text {
		t.Errorf("say args = %v", got)
	}
}

func TestDetectSynthesizerMissing(t *testing.T) {
	synth, err := DetectSynthesizer("uhrzeit-no-such-speech-engine")
	if synth != nil {
		t.Errorf("synth = %v, want nil", synth)
	}
	if !errors.Is(err, errors.ErrCodeSpeechUnavailable) {
		t.Errorf("error = %v, want SPEECH_UNAVAILABLE", err)
	}
}
