// Package desktop wraps the OS capabilities apodbar needs: the desktop
// wallpaper, the lock-screen image and the clipboard.
//
// Each capability is a small type the picture fetcher and the event loop
// consume through interfaces, so tests substitute fakes and platforms
// without a capability get a no-op instead of build-tagged code.
//
//   - Wallpaper: github.com/reujab/wallpaper (Windows, macOS, GNOME, KDE,
//     XFCE, LXDE, MATE, Cinnamon, Deepin and feh fallbacks).
//   - LockScreen: WinRT LockScreen.SetImageFileAsync via PowerShell on
//     Windows; unsupported elsewhere.
//   - Clipboard: github.com/atotto/clipboard.
package desktop
