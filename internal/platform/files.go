package platform

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// File permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	CmdCommand      = "cmd"
	StartCommand    = "start"
	AndroidAM       = "am"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
	WindowsCmdFlag     = "/c"
)

// Android intents and locations
const (
	AndroidDownloadsDir     = "/sdcard/Download"
	AndroidDownloadsURI     = "content://com.android.externalstorage.documents/root/primary/Download"
	AndroidActionView       = "android.intent.action.VIEW"
	AndroidActionMediaScan  = "android.intent.action.MEDIA_SCANNER_SCAN_FILE"
	AndroidGalleryComponent = "com.android.gallery3d/.app.GalleryActivity"
	AndroidImageMIME        = "image/*"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// IsAndroid reports whether the process runs on Android
func IsAndroid() bool {
	return runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != "" ||
		os.Getenv("ANDROID_STORAGE") != "" ||
		filepath.Base(os.Args[0]) == "libdist.so" // Fyne Android apps run as libdist.so
}

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	absPath, err := existingAbsPath(filePath)
	if err != nil {
		return err
	}

	if IsAndroid() {
		return openFileInManagerAndroid(absPath)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, absPath).Run()
	case OSLinux:
		return openFileInManagerLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFileInManagerLinux opens the directory containing the file.
// File selection is not standardized on Linux.
func openFileInManagerLinux(filePath string) error {
	dir := filepath.Dir(filePath)

	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}

// openFileInManagerAndroid tries the Downloads root, then the file's directory
func openFileInManagerAndroid(filePath string) error {
	attempts := [][]string{
		{"start", "-a", AndroidActionView, "-d", AndroidDownloadsURI},
		{"start", "-a", AndroidActionView, "-d", "file://" + filepath.Dir(filePath)},
		{"start", "-a", "android.settings.INTERNAL_STORAGE_SETTINGS"},
	}
	return runFirst(AndroidAM, attempts, "failed to open file in manager: no suitable file manager found")
}

// OpenFileWithDefaultApp opens the file with the default system application
func OpenFileWithDefaultApp(filePath string) error {
	absPath, err := existingAbsPath(filePath)
	if err != nil {
		return err
	}

	if IsAndroid() {
		return openFileWithDefaultAppAndroid(absPath)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, absPath).Run()
	case OSWindows:
		return exec.Command(CmdCommand, WindowsCmdFlag, StartCommand, "", absPath).Run()
	case OSLinux:
		return exec.Command(XDGOpenCommand, absPath).Run()
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFileWithDefaultAppAndroid prefers the gallery, then any image viewer
func openFileWithDefaultAppAndroid(filePath string) error {
	uri := "file://" + filePath
	attempts := [][]string{
		{"start", "-n", AndroidGalleryComponent, "-d", uri},
		{"start", "-a", AndroidActionView, "-d", uri, "-t", AndroidImageMIME},
		{"start", "-a", AndroidActionView, "-d", uri},
	}
	return runFirst(AndroidAM, attempts, "failed to open file with any method: no suitable app found")
}

// runFirst runs command with each argument list until one succeeds
func runFirst(command string, attempts [][]string, failure string) error {
	for _, args := range attempts {
		if err := exec.Command(command, args...).Run(); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%s", failure)
}

// existingAbsPath validates that filePath exists and returns it absolute
func existingAbsPath(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("file path is empty")
	}
	if _, err := os.Stat(filePath); err != nil {
		return "", fmt.Errorf("file does not exist: %w", err)
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return absPath, nil
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	if IsAndroid() {
		// External storage so saved images appear in the Gallery
		return AndroidDownloadsDir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, "Downloads"), nil
}

// NotifyMediaScanner tells the Android media scanner about a new image so it
// shows up in the Gallery. It is a no-op elsewhere and never blocks.
func NotifyMediaScanner(filePath string) {
	if !IsAndroid() {
		return
	}

	cmd := exec.Command(AndroidAM, "broadcast", "-a", AndroidActionMediaScan, "-d", "file://"+filePath)
	go func() {
		if err := cmd.Run(); err != nil {
			log.Printf("Failed to notify media scanner about %s: %v", filePath, err)
		}
	}()
}
