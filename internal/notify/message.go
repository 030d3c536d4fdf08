package notify

import (
	"strings"

	"github.com/llehouerou/keypoint/internal/catalog"
	"github.com/llehouerou/keypoint/internal/errmsg"
	"github.com/llehouerou/keypoint/internal/playback"
)

// DefaultTimeout is how long notifications stay visible, in ms.
const DefaultTimeout int32 = 5000

// ChapterStarted builds the notification for playback starting on a new
// chapter. The body is the book title and author.
func ChapterStarted(
	c playback.ChapterChange,
	book catalog.Book,
	loc *errmsg.Localizer,
	icon string,
) Notification {
	parts := make([]string, 0, 2)
	if book.Title != "" {
		parts = append(parts, book.Title)
	}
	if book.Author != "" {
		parts = append(parts, book.Author)
	}

	return Notification{
		Title:    loc.Sprintf(errmsg.KeyNowIn, c.Index+1, c.Count),
		Body:     strings.Join(parts, " · "),
		Icon:     icon,
		Category: CategoryChapter,
		Timeout:  DefaultTimeout,
		Urgency:  UrgencyLow,
	}
}

// PlaybackFailed builds the notification for entering the error state.
func PlaybackFailed(alert playback.Alert, icon string) Notification {
	return Notification{
		Title:    alert.Title,
		Body:     alert.Message,
		Icon:     icon,
		Category: CategoryError,
		Timeout:  DefaultTimeout,
		Urgency:  UrgencyNormal,
	}
}
