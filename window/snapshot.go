package window

import (
	"fmt"
	"path/filepath"
)

// SetCaptureDir sets the directory hotkey snapshots are written to
func (w *Window) SetCaptureDir(dir string) {
	w.captureMu.Lock()
	defer w.captureMu.Unlock()
	w.captureDir = dir
}

// CaptureDir returns the snapshot directory
func (w *Window) CaptureDir() string {
	w.captureMu.Lock()
	defer w.captureMu.Unlock()
	return w.captureDir
}

// SaveSnapshot writes the live canvas to save{N}.png in the capture
// directory, N counting from 1 for this window, and returns the path
func (w *Window) SaveSnapshot() (string, error) {
	n := w.captureCount.Add(1)
	path := filepath.Join(w.CaptureDir(), fmt.Sprintf("save%d.png", n))

	if err := w.canvas.Save(path); err != nil {
		Logger().Warn("snapshot failed", "path", path, "error", err)
		return "", fmt.Errorf("failed to capture snapshot: %w", err)
	}

	w.snapshots.Add(1)
	w.lastSnapshot.Store(filepath.Base(path))
	Logger().Info("snapshot saved", "path", path)

	if w.onSnapshot != nil {
		w.onSnapshot(path)
	}
	return path, nil
}
