package config

import (
	"sync"
)

// LoadedPrompts holds the content of prompts loaded from files for one
// operation. Empty fields mean no file override exists.
type LoadedPrompts struct {
	System string
	User   string
}

var (
	loadedPromptsMu sync.RWMutex
	loadedPrompts   = make(map[string]LoadedPrompts)
)

// GetPromptsForOperation returns a copy of the loaded prompts for an
// operation. Safe for concurrent use with the prompt watcher.
func GetPromptsForOperation(operation string) LoadedPrompts {
	loadedPromptsMu.RLock()
	defer loadedPromptsMu.RUnlock()
	return loadedPrompts[operation]
}

// setLoadedPrompt replaces one loaded prompt for an operation
func setLoadedPrompt(operation, promptType, content string) {
	loadedPromptsMu.Lock()
	defer loadedPromptsMu.Unlock()

	prompts := loadedPrompts[operation]
	switch promptType {
	case "system":
		prompts.System = content
	case "user":
		prompts.User = content
	}
	loadedPrompts[operation] = prompts
}

// resetLoadedPrompts clears all loaded prompts, used by tests
func resetLoadedPrompts() {
	loadedPromptsMu.Lock()
	defer loadedPromptsMu.Unlock()
	loadedPrompts = make(map[string]LoadedPrompts)
}
