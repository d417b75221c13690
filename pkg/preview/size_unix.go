//go:build unix

package preview

import "golang.org/x/sys/unix"

// cellPixels derives the cell size from the window's pixel dimensions.
func cellPixels(fd uintptr) (w, h int, ok bool) {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 || ws.Xpixel == 0 || ws.Ypixel == 0 {
		return 0, 0, false
	}
	w, h = int(ws.Xpixel)/int(ws.Col), int(ws.Ypixel)/int(ws.Row)
	return w, h, w > 0 && h > 0
}
