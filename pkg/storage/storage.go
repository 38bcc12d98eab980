// Package storage keeps the optional bus settings record on flash using LittleFS.
// It handles atomic writes, version checking, and cleanup of temporary files.
package storage

import (
	"errors"
	"os"
	"path"
	"strings"

	"github.com/tuffrabit/tinygo-rtcclock-rp2040/pkg/config"

	"tinygo.org/x/tinyfs"
	"tinygo.org/x/tinyfs/littlefs"
)

const (
	configDir    = "/config"
	settingsFile = "/config/settings.bin"
	tempSuffix   = ".tmp"
)

var (
	ErrSettingsNotFound = errors.New("settings not found")
	ErrInvalidSettings  = errors.New("invalid settings data")
	ErrVersionMismatch  = errors.New("settings version mismatch")
)

// Manager handles settings persistence using LittleFS.
type Manager struct {
	fs      *littlefs.LFS
	mounted bool
}

// New mounts the filesystem on the given block device and performs
// boot-time cleanup. If format is true and mount fails, it will format the
// filesystem. The firmware passes false so that flash is never written
// unless a record is saved explicitly.
func New(blockDev tinyfs.BlockDevice, format bool) (*Manager, error) {
	lfs := littlefs.New(blockDev)

	// Conservative settings for RP2040 flash
	lfs.Configure(&littlefs.Config{
		CacheSize:     512,
		LookaheadSize: 128,
	})

	err := lfs.Mount()
	if err != nil {
		if !format {
			return nil, err
		}
		if err := lfs.Format(); err != nil {
			return nil, err
		}
		if err := lfs.Mount(); err != nil {
			return nil, err
		}
	}

	m := &Manager{
		fs:      lfs,
		mounted: true,
	}

	// Leftover temp files are harmless; a failed cleanup is retried next boot.
	_ = m.bootCleanup()

	return m, nil
}

// Close unmounts the filesystem.
func (m *Manager) Close() error {
	if m.mounted {
		m.mounted = false
		return m.fs.Unmount()
	}
	return nil
}

// bootCleanup removes temporary files left over from interrupted writes.
func (m *Manager) bootCleanup() error {
	entries, err := m.readDir(configDir)
	if err != nil {
		if isNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, tempSuffix) {
			m.fs.Remove(path.Join(configDir, name))
		}
	}
	return nil
}

// readDir reads the directory entries at the given path.
func (m *Manager) readDir(dirPath string) ([]os.FileInfo, error) {
	f, err := m.fs.Open(dirPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !f.IsDir() {
		return nil, errors.New("not a directory")
	}

	return f.Readdir(-1)
}

// ensureDir creates the config directory if it doesn't exist.
func (m *Manager) ensureDir() error {
	if err := m.fs.Mkdir(configDir, 0755); err != nil && !isExist(err) {
		return err
	}
	return nil
}

// isExist checks if an error is "already exists".
// LittleFS errors don't always match os.IsExist, so we check the message too.
func isExist(err error) bool {
	if err == nil {
		return false
	}
	if os.IsExist(err) {
		return true
	}
	return strings.Contains(err.Error(), "already exists")
}

// isNotExist is the "No directory entry" counterpart of isExist.
func isNotExist(err error) bool {
	if err == nil {
		return false
	}
	if os.IsNotExist(err) {
		return true
	}
	return strings.Contains(err.Error(), "No directory entry")
}

// LoadSettings loads the settings record.
// It returns ErrSettingsNotFound when no record was ever saved and
// ErrVersionMismatch when the record was written by another format version.
func (m *Manager) LoadSettings(s *config.Settings) error {
	f, err := m.fs.Open(settingsFile)
	if err != nil {
		if isNotExist(err) {
			return ErrSettingsNotFound
		}
		return err
	}
	defer f.Close()

	buf := make([]byte, config.SettingsSize)
	n, err := f.Read(buf)
	if err != nil {
		return err
	}
	if n != config.SettingsSize {
		return ErrInvalidSettings
	}

	var loaded config.Settings
	if err := loaded.UnmarshalBinary(buf); err != nil {
		return err
	}
	if loaded.Version != config.CurrentVersion {
		return ErrVersionMismatch
	}

	*s = loaded
	return nil
}

// SaveSettings saves the settings record atomically.
func (m *Manager) SaveSettings(s *config.Settings) error {
	if err := m.ensureDir(); err != nil {
		return err
	}

	s.Version = config.CurrentVersion

	data, err := s.MarshalBinary()
	if err != nil {
		return err
	}

	return m.atomicWrite(settingsFile, data)
}

// DeleteSettings removes the settings record so the next boot uses the
// compiled-in defaults.
func (m *Manager) DeleteSettings() error {
	err := m.fs.Remove(settingsFile)
	if isNotExist(err) {
		return nil
	}
	return err
}

// atomicWrite writes data to a temporary file, syncs it, then renames.
// The original file is never in a partially written state.
func (m *Manager) atomicWrite(filepath string, data []byte) error {
	tempPath := filepath + tempSuffix

	m.fs.Remove(tempPath)

	f, err := m.fs.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		m.fs.Remove(tempPath)
		return err
	}

	// Sync ensures data hits flash
	if syncer, ok := f.(interface{ Sync() error }); ok {
		if err := syncer.Sync(); err != nil {
			f.Close()
			m.fs.Remove(tempPath)
			return err
		}
	}

	if err := f.Close(); err != nil {
		m.fs.Remove(tempPath)
		return err
	}

	// LittleFS rename doesn't replace
	m.fs.Remove(filepath)

	if err := m.fs.Rename(tempPath, filepath); err != nil {
		m.fs.Remove(tempPath)
		return err
	}

	return nil
}

// Resolve returns the settings to boot with: the flash record when one is
// present and passes config validation, otherwise config.Default(). A nil
// Manager (flash not mounted) also yields the defaults. The second result
// reports whether the flash record was used.
func Resolve(m *Manager) (config.Settings, bool) {
	if m == nil {
		return config.Default(), false
	}
	var s config.Settings
	if err := m.LoadSettings(&s); err != nil {
		return config.Default(), false
	}
	// An unusable record must not keep the clock from booting.
	if err := s.Validate(); err != nil {
		return config.Default(), false
	}
	return s, true
}
