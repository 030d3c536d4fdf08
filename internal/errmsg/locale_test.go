package errmsg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestNewLocalizer_ResolvesLanguage(t *testing.T) {
	tests := []struct {
		locale string
		want   language.Tag
	}{
		{"", language.English},
		{"en", language.English},
		{"en-GB", language.English},
		{"fr", language.French},
		{"fr-CA", language.French},
		{"not a locale", language.English},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			base, _ := NewLocalizer(tt.locale).Language().Base()
			want, _ := tt.want.Base()
			assert.Equal(t, want, base)
		})
	}
}

func TestLocalizer_Sprintf(t *testing.T) {
	en := NewLocalizer("en")
	fr := NewLocalizer("fr")

	assert.Equal(t, "Playback stalled.", en.Sprintf(KeyPlaybackStalled))
	assert.Equal(t, "La lecture est bloquée.", fr.Sprintf(KeyPlaybackStalled))
	assert.Equal(t, "Key point 2 of 3", en.Sprintf(KeyKeyPoint, 2, 3))
	assert.Equal(t, "Speed x1.5", en.Sprintf(KeySpeed, "1.5"))
	assert.Equal(t,
		"The chapter audio could not be decoded: bad header",
		en.Sprintf(KeyResourceDecode, errors.New("bad header")),
	)
}

func TestTemplates_EveryLanguageHasEveryKey(t *testing.T) {
	english := templates[language.English]
	for tag, msgs := range templates {
		for key := range english {
			if _, ok := msgs[key]; !ok {
				t.Errorf("%v: missing template for %q", tag, key)
			}
		}
	}
}
