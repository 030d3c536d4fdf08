package errmsg

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a localized message template.
type Key string

// Message keys. Templates take fmt verbs; causes are passed as %v.
const (
	KeyAlertTitle   Key = "alert.title"
	KeyAlertDismiss Key = "alert.dismiss"

	KeySessionConfig       Key = "player.error.sessionConfig"
	KeyPlayerNotReady      Key = "player.error.playerNotInitialized"
	KeyResourceLoad        Key = "player.error.failedToLoadFile"
	KeyResourceDecode      Key = "player.error.failedToDecodeFile"
	KeyPlaybackInterrupted Key = "player.error.failedToPlayToEnd"
	KeyPlaybackStalled     Key = "player.error.playbackStalled"
	KeyUnknown             Key = "player.error.unknownError"

	KeyKeyPoint Key = "player.keyPoint"
	KeySpeed    Key = "player.speed"
	KeyLoading  Key = "player.loading"
	KeyNowIn    Key = "notify.chapter"
)

var templates = map[language.Tag]map[Key]string{
	language.English: {
		KeyAlertTitle:          "Playback error",
		KeyAlertDismiss:        "Dismiss",
		KeySessionConfig:       "Could not configure the audio session: %v",
		KeyPlayerNotReady:      "The player is not ready yet.",
		KeyResourceLoad:        "The chapter audio file could not be found.",
		KeyResourceDecode:      "The chapter audio could not be decoded: %v",
		KeyPlaybackInterrupted: "Playback stopped before the end of the chapter: %v",
		KeyPlaybackStalled:     "Playback stalled.",
		KeyUnknown:             "Something went wrong.",
		KeyKeyPoint:            "Key point %d of %d",
		KeySpeed:               "Speed x%s",
		KeyLoading:             "Loading…",
		KeyNowIn:               "Key point %d of %d",
	},
	language.French: {
		KeyAlertTitle:          "Erreur de lecture",
		KeyAlertDismiss:        "Fermer",
		KeySessionConfig:       "Impossible de configurer la sortie audio : %v",
		KeyPlayerNotReady:      "Le lecteur n'est pas encore prêt.",
		KeyResourceLoad:        "Le fichier audio du chapitre est introuvable.",
		KeyResourceDecode:      "Impossible de décoder l'audio du chapitre : %v",
		KeyPlaybackInterrupted: "La lecture s'est arrêtée avant la fin du chapitre : %v",
		KeyPlaybackStalled:     "La lecture est bloquée.",
		KeyUnknown:             "Une erreur est survenue.",
		KeyKeyPoint:            "Point clé %d sur %d",
		KeySpeed:               "Vitesse x%s",
		KeyLoading:             "Chargement…",
		KeyNowIn:               "Point clé %d sur %d",
	},
}

var supported = []language.Tag{language.English, language.French}

// Localizer renders message templates for one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLocalizer returns a Localizer for the closest supported match of locale.
// Unknown or empty locales fall back to English.
func NewLocalizer(locale string) *Localizer {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range templates {
		for key, tmpl := range msgs {
			// SetString only fails on malformed tags, which are constants here.
			_ = b.SetString(tag, string(key), tmpl)
		}
	}

	tag := language.English
	if parsed, err := language.Parse(locale); err == nil {
		matcher := language.NewMatcher(supported)
		_, idx, conf := matcher.Match(parsed)
		if conf != language.No {
			tag = supported[idx]
		}
	}

	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(b)),
	}
}

// Language returns the resolved language tag.
func (l *Localizer) Language() language.Tag {
	return l.tag
}

// Sprintf renders the template for key.
func (l *Localizer) Sprintf(key Key, args ...any) string {
	return l.printer.Sprintf(string(key), args...)
}
