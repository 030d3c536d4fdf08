package app

import (
	"github.com/llehouerou/keypoint/internal/errmsg"
	"github.com/llehouerou/keypoint/internal/notify"
	"github.com/llehouerou/keypoint/internal/playback"
)

func (m *Model) notifyChapter(c playback.ChapterChange) {
	if m.notifier == nil {
		return
	}
	n := notify.ChapterStarted(c, m.ctrl.Catalog().Book(), m.loc, m.icon)
	if _, err := m.notifier.Notify(n); err != nil {
		m.log.Debug(errmsg.Format(errmsg.OpNotify, err))
	}
}

func (m *Model) notifyError(e playback.ErrorEvent) {
	if m.notifier == nil {
		return
	}
	if _, err := m.notifier.Notify(notify.PlaybackFailed(e.Alert, m.icon)); err != nil {
		m.log.Debug(errmsg.Format(errmsg.OpNotify, err))
	}
}
