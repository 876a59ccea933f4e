package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"careerlens/internal/errors"
)

// PromptWatcher watches configured prompt files and hot-reloads their
// content into the loaded prompt registry when they change. Running
// operations pick up the new prompts on their next request.
type PromptWatcher struct {
	mu sync.RWMutex

	bindings    []promptFileBinding
	lastModTime map[string]time.Time

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	logger  *errors.Logger
	running bool

	// OnReload, when set, is invoked after each reload attempt. Used by
	// the server to record reload metrics.
	OnReload func(operation, promptType string, success bool)
}

// NewPromptWatcher creates a watcher over every prompt file the config names.
// Returns nil when no prompt files are configured.
func NewPromptWatcher(cfg *Config, debounceDelay time.Duration, logger *errors.Logger) *PromptWatcher {
	bindings := cfg.promptFileBindings()
	if len(bindings) == 0 {
		return nil
	}

	if debounceDelay == 0 {
		debounceDelay = time.Second
	}

	return &PromptWatcher{
		bindings:      bindings,
		lastModTime:   make(map[string]time.Time),
		debounceDelay: debounceDelay,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1), // Buffered to prevent blocking
		logger:        logger,
	}
}

// Start begins watching prompt files for changes
func (pw *PromptWatcher) Start() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if pw.running {
		return fmt.Errorf("prompt watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	pw.fsWatcher = watcher

	pw.updateModTimes()

	for _, b := range pw.bindings {
		if err := pw.addFileToWatcher(b.Path); err != nil {
			pw.logger.Warn("Failed to watch prompt file", "file", b.Path, "error", err)
		}
	}

	pw.running = true
	go pw.watchLoop()

	pw.logger.Info("Prompt file watcher started",
		"files", pw.WatchedFiles(),
		"debounce_delay", pw.debounceDelay)
	return nil
}

// Stop stops the prompt file watcher
func (pw *PromptWatcher) Stop() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if !pw.running {
		return nil
	}

	close(pw.stopChan)

	if pw.debounceTimer != nil {
		pw.debounceTimer.Stop()
	}

	if pw.fsWatcher != nil {
		if err := pw.fsWatcher.Close(); err != nil {
			pw.logger.LogError(err, "Failed to close file system watcher")
			return err
		}
	}

	pw.running = false
	pw.logger.Info("Prompt file watcher stopped")
	return nil
}

// addFileToWatcher adds a file and its directory to the file system watcher
func (pw *PromptWatcher) addFileToWatcher(file string) error {
	if err := pw.fsWatcher.Add(file); err != nil {
		if os.IsNotExist(err) {
			dir := filepath.Dir(file)
			if err := pw.fsWatcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", dir, err)
			}
		} else {
			return fmt.Errorf("failed to watch file %s: %w", file, err)
		}
	}

	// Also watch the directory to catch atomic writes (rename operations)
	dir := filepath.Dir(file)
	if err := pw.fsWatcher.Add(dir); err != nil {
		pw.logger.Warn("Failed to watch directory for atomic writes",
			"directory", dir, "error", err)
	}

	return nil
}

func (pw *PromptWatcher) updateModTimes() {
	for _, b := range pw.bindings {
		if stat, err := os.Stat(b.Path); err == nil {
			pw.lastModTime[b.Path] = stat.ModTime()
		}
	}
}

// hasFileChanged checks if a file has been modified since last check
func (pw *PromptWatcher) hasFileChanged(file string) bool {
	stat, err := os.Stat(file)
	if err != nil {
		if os.IsNotExist(err) {
			if _, exists := pw.lastModTime[file]; exists {
				delete(pw.lastModTime, file)
				return true
			}
		}
		return false
	}

	lastMod, exists := pw.lastModTime[file]
	if !exists || stat.ModTime().After(lastMod) {
		pw.lastModTime[file] = stat.ModTime()
		return true
	}

	return false
}

// watchLoop is the main event loop for file watching
func (pw *PromptWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-pw.fsWatcher.Events:
			if !ok {
				return
			}
			if pw.shouldProcessEvent(event) {
				pw.scheduleReload()
			}

		case err, ok := <-pw.fsWatcher.Errors:
			if !ok {
				return
			}
			pw.logger.LogError(err, "Prompt file watcher error")

		case <-pw.reloadChan:
			pw.reloadChangedFiles()

		case <-pw.stopChan:
			return
		}
	}
}

// reloadChangedFiles re-reads every changed prompt file into the
// loaded prompt registry. A file that fails to load keeps its previous
// content; the error is logged, never fatal at runtime.
func (pw *PromptWatcher) reloadChangedFiles() {
	for _, b := range pw.bindings {
		if !pw.hasFileChanged(b.Path) {
			continue
		}

		content, err := loadPromptFromFile(b.Path, b.Type, b.Operation)
		if err != nil {
			pw.logger.LogError(err, "Failed to reload prompt file, keeping previous content",
				"file", b.Path,
				"operation", b.Operation,
				"prompt_type", b.Type)
			if pw.OnReload != nil {
				pw.OnReload(b.Operation, b.Type, false)
			}
			continue
		}

		setLoadedPrompt(b.Operation, b.Type, content)
		if pw.OnReload != nil {
			pw.OnReload(b.Operation, b.Type, true)
		}
		pw.logger.Info("Prompt file reloaded",
			"file", b.Path,
			"operation", b.Operation,
			"prompt_type", b.Type,
			"characters", len(content))
	}
}

// shouldProcessEvent determines if a file system event should trigger a reload check
func (pw *PromptWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	isWatchedFile := false
	for _, b := range pw.bindings {
		if event.Name == b.Path || filepath.Base(event.Name) == filepath.Base(b.Path) {
			isWatchedFile = true
			break
		}
	}
	if !isWatchedFile {
		return false
	}

	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// scheduleReload schedules a debounced reload
func (pw *PromptWatcher) scheduleReload() {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if pw.debounceTimer != nil {
		pw.debounceTimer.Stop()
	}

	pw.debounceTimer = time.AfterFunc(pw.debounceDelay, func() {
		select {
		case pw.reloadChan <- struct{}{}:
		default:
			// Reload already scheduled
		}
	})
}

// IsRunning returns whether the watcher is currently running
func (pw *PromptWatcher) IsRunning() bool {
	pw.mu.RLock()
	defer pw.mu.RUnlock()
	return pw.running
}

// WatchedFiles returns the list of files being watched
func (pw *PromptWatcher) WatchedFiles() []string {
	files := make([]string, 0, len(pw.bindings))
	for _, b := range pw.bindings {
		files = append(files, b.Path)
	}
	return files
}
