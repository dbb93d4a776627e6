// Package backup keeps timestamped snapshots of the schedule store file
// and restores them after validating their contents.
package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"weekplan/internal/fsutil"
	"weekplan/internal/schedule"
	"weekplan/internal/storage"
)

// Version constants for the backup format.
const (
	ManifestVersion = "2.0"
	ManifestFile    = "manifest.json"
	BackupsDir      = "backups"
)

// StoreFile is the store file inside the data directory.
var StoreFile = storage.StorageKey + ".json"

// Errors returned by the manager.
var (
	ErrNoBackups      = errors.New("no backups available")
	ErrBackupNotFound = errors.New("backup not found")
	ErrInvalidName    = errors.New("invalid backup name")
	ErrNothingToSave  = errors.New("no schedule data to back up")
)

// Manager handles backup and restore operations.
type Manager struct {
	dataDir    string // data directory holding the store file
	backupDir  string // <dataDir>/backups
	appVersion string
	now        func() time.Time
}

// Manifest contains metadata about a backup.
type Manifest struct {
	Version    string         `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	AppVersion string         `json:"app_version"`
	Files      []string       `json:"files"`
	Stats      map[string]int `json:"stats"`
}

// BackupInfo contains summary information about a backup.
type BackupInfo struct {
	Name      string         // Directory name (2024-03-04_143022_123)
	Path      string         // Full path to backup directory
	CreatedAt time.Time      // When the backup was created
	Stats     map[string]int // schedules, activities
}

// NewManager creates a new backup manager.
func NewManager(dataDir, appVersion string) *Manager {
	return &Manager{
		dataDir:    dataDir,
		backupDir:  filepath.Join(dataDir, BackupsDir),
		appVersion: appVersion,
		now:        time.Now,
	}
}

// SetNowFunc overrides the clock used to name backups. Passing nil resets
// it to time.Now.
func (m *Manager) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	m.now = now
}

// Dir returns the directory backups are written to.
func (m *Manager) Dir() string {
	return m.backupDir
}

// Create snapshots the store file. Returns the backup name on success.
func (m *Manager) Create() (string, error) {
	srcPath := filepath.Join(m.dataDir, StoreFile)
	data, ok, err := fsutil.ReadIfExists(srcPath)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNothingToSave
	}

	if err := os.MkdirAll(m.backupDir, fsutil.DirPerm); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	now := m.now()
	name := fmt.Sprintf("%s_%03d", now.Format("2006-01-02_150405"), now.Nanosecond()/1e6)
	backupPath := filepath.Join(m.backupDir, name)
	for dirExists(backupPath) {
		// Same millisecond: step forward so names stay unique and sortable.
		now = now.Add(time.Millisecond)
		name = fmt.Sprintf("%s_%03d", now.Format("2006-01-02_150405"), now.Nanosecond()/1e6)
		backupPath = filepath.Join(m.backupDir, name)
	}

	if err := os.MkdirAll(backupPath, fsutil.DirPerm); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	if err := fsutil.WriteFileAtomic(filepath.Join(backupPath, StoreFile), data, fsutil.FilePerm); err != nil {
		_ = os.RemoveAll(backupPath)
		return "", fmt.Errorf("failed to copy %s: %w", StoreFile, err)
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		Files:      []string{StoreFile},
		Stats:      statsFor(data),
	}
	if err := writeJSON(filepath.Join(backupPath, ManifestFile), manifest); err != nil {
		_ = os.RemoveAll(backupPath)
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	return name, nil
}

// List returns all available backups, newest first.
func (m *Manager) List() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if errors.Is(err, os.ErrNotExist) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := m.info(entry.Name())
		if err != nil {
			continue
		}
		backups = append(backups, *info)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// Latest returns the most recent backup.
func (m *Manager) Latest() (*BackupInfo, error) {
	backups, err := m.List()
	if err != nil {
		return nil, err
	}
	if len(backups) == 0 {
		return nil, ErrNoBackups
	}
	return &backups[0], nil
}

// Load reads and validates the state held by a backup without touching the
// store file.
func (m *Manager) Load(name string) (schedule.State, error) {
	if err := validateBackupName(name); err != nil {
		return schedule.State{}, err
	}
	path := filepath.Join(m.backupDir, name, StoreFile)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return schedule.State{}, fmt.Errorf("%w: %s", ErrBackupNotFound, name)
	}
	if err != nil {
		return schedule.State{}, fmt.Errorf("open backup: %w", err)
	}
	defer f.Close()

	st, err := storage.Import(f)
	if err != nil {
		return schedule.State{}, fmt.Errorf("backup %s is invalid: %w", name, err)
	}
	return st, nil
}

// Restore validates a backup and copies it over the store file. A safety
// backup of the current file is taken first when one exists. The restored
// state is returned so a running store can adopt it.
func (m *Manager) Restore(name string) (schedule.State, string, error) {
	st, err := m.Load(name)
	if err != nil {
		return schedule.State{}, "", err
	}

	safetyName, err := m.Create()
	if err != nil && !errors.Is(err, ErrNothingToSave) {
		return schedule.State{}, "", fmt.Errorf("failed to create safety backup: %w", err)
	}

	src := filepath.Join(m.backupDir, name, StoreFile)
	dst := filepath.Join(m.dataDir, StoreFile)
	if err := fsutil.CopyFile(src, dst, fsutil.FilePerm); err != nil {
		return schedule.State{}, safetyName, fmt.Errorf("failed to restore %s (safety backup: %s): %w", StoreFile, safetyName, err)
	}
	return st, safetyName, nil
}

// Delete removes a specific backup.
func (m *Manager) Delete(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}
	backupPath := filepath.Join(m.backupDir, name)
	if !dirExists(backupPath) {
		return fmt.Errorf("%w: %s", ErrBackupNotFound, name)
	}
	return os.RemoveAll(backupPath)
}

// Prune removes old backups, keeping only the N most recent.
func (m *Manager) Prune(keepCount int) (int, error) {
	if keepCount < 0 {
		return 0, fmt.Errorf("keepCount must be non-negative")
	}
	backups, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keepCount {
		return 0, nil
	}

	deleted := 0
	for _, b := range backups[keepCount:] {
		if err := m.Delete(b.Name); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// GetBackup returns information about a specific backup.
func (m *Manager) GetBackup(name string) (*BackupInfo, error) {
	if err := validateBackupName(name); err != nil {
		return nil, err
	}
	if !dirExists(filepath.Join(m.backupDir, name)) {
		return nil, fmt.Errorf("%w: %s", ErrBackupNotFound, name)
	}
	return m.info(name)
}

func (m *Manager) info(name string) (*BackupInfo, error) {
	backupPath := filepath.Join(m.backupDir, name)

	var manifest Manifest
	if err := readJSON(filepath.Join(backupPath, ManifestFile), &manifest); err != nil {
		createdAt, parseErr := parseBackupName(name)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
		manifest.CreatedAt = createdAt
		manifest.Stats = make(map[string]int)
	}

	return &BackupInfo{
		Name:      name,
		Path:      backupPath,
		CreatedAt: manifest.CreatedAt,
		Stats:     manifest.Stats,
	}, nil
}

// Helper functions

func validateBackupName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if _, err := parseBackupName(name); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// statsFor counts schedules and activities in raw store data. Unparseable
// data yields empty stats rather than failing the backup.
func statsFor(data []byte) map[string]int {
	stats := make(map[string]int)
	var st schedule.State
	if err := json.Unmarshal(data, &st); err != nil {
		return stats
	}
	stats["schedules"] = len(st.Schedules)
	activities := 0
	for _, sch := range st.Schedules {
		activities += sch.ActivityCount()
	}
	stats["activities"] = activities
	return stats
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, fsutil.FilePerm)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// parseBackupName parses a backup directory name into a timestamp.
// Accepts 2006-01-02_150405 and 2006-01-02_150405_XXX.
func parseBackupName(name string) (time.Time, error) {
	if len(name) == 21 {
		baseTime, err := time.Parse("2006-01-02_150405", name[:17])
		if err != nil {
			return time.Time{}, err
		}
		if name[17] != '_' {
			return time.Time{}, fmt.Errorf("invalid backup format")
		}
		ms, err := strconv.Atoi(name[18:])
		if err != nil || ms < 0 || ms > 999 {
			return time.Time{}, fmt.Errorf("invalid milliseconds")
		}
		return baseTime.Add(time.Duration(ms) * time.Millisecond), nil
	}
	return time.Parse("2006-01-02_150405", name)
}
