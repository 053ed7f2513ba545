// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

// AppDir is the directory name used under the XDG base directories.
const AppDir = "pokertime"

// EnvVar selects an isolated set of files (e.g. POKERTIME_ENV=dev).
const EnvVar = "POKERTIME_ENV"

// Paths holds all application path configurations.
type Paths struct {
	appDir         string
	configFileName string
	dbFileName     string
	logFileName    string
	exportFileName string

	// Computed absolute paths
	configFilePath string
	dbFilePath     string
	logFilePath    string
	exportDir      string
}

var (
	paths *Paths
	once  sync.Once
)

// Initialize must be called once at program startup.
func Initialize() error {
	var initErr error

	once.Do(func() {
		p := &Paths{
			appDir:         AppDir,
			configFileName: "config.yml",
			dbFileName:     "pokertime.db",
			logFileName:    "pokertime.log",
			exportFileName: "poker-sessions.xlsx",
		}

		p.applyEnvironmentOverrides()

		initErr = p.computePaths()
		if initErr == nil {
			paths = p
		}
	})

	return initErr
}

// Must panics if paths haven't been initialized.
func Must() *Paths {
	if paths == nil {
		panic("pathutil.Initialize() must be called before accessing paths")
	}

	return paths
}

func Dir() string {
	return Must().appDir
}

func DBFilePath() string {
	return Must().dbFilePath
}

func LogFilePath() string {
	return Must().logFilePath
}

func ConfigFilePath() string {
	return Must().configFilePath
}

// ExportFilePath is the default destination of the spreadsheet export.
func ExportFilePath() string {
	p := Must()
	return filepath.Join(p.exportDir, p.exportFileName)
}

func (p *Paths) applyEnvironmentOverrides() {
	env := strings.TrimSpace(os.Getenv(EnvVar))
	if env != "" {
		p.configFileName = fmt.Sprintf("config_%s.yml", env)
		p.dbFileName = fmt.Sprintf("pokertime_%s.db", env)
		p.logFileName = fmt.Sprintf("pokertime_%s.log", env)
	}
}

func (p *Paths) computePaths() error {
	var err error

	relPath := filepath.Join(p.appDir, p.configFileName)

	p.configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	dataDir, err := xdg.DataFile(p.appDir)
	if err != nil {
		return fmt.Errorf("resolving data path: %w", err)
	}

	p.dbFilePath = filepath.Join(dataDir, p.dbFileName)

	p.logFilePath = filepath.Join(dataDir, "log", p.logFileName)

	p.exportDir = xdg.UserDirs.Documents
	if p.exportDir == "" {
		p.exportDir = xdg.Home
	}

	return nil
}

// StripExtension returns the input file name without its extension.
func StripExtension(fileName string) string {
	return fileName[:len(fileName)-len(filepath.Ext(fileName))]
}

// EnsureExt appends ext to fileName unless it already has it.
func EnsureExt(fileName, ext string) string {
	if strings.EqualFold(filepath.Ext(fileName), ext) {
		return fileName
	}

	return StripExtension(fileName) + ext
}
