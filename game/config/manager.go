package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/wild-wild-trader/pkg/logger"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Manager handles map configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *MapConfig
	configs       map[string]*MapConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*MapConfig),
	}

	m.defaultConfig = m.resolveDefault()
	return m, nil
}

// LoadConfig loads a configuration by name
func (m *Manager) LoadConfig(name string) (*MapConfig, error) {
	name = configID(name)

	m.mu.RLock()
	if config, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[name]; exists {
		return config, nil
	}

	config, err := m.readConfig(name)
	if err != nil {
		return nil, err
	}
	m.configs[name] = config
	return config, nil
}

// ListConfigs returns information about all valid configurations, sorted by id.
func (m *Manager) ListConfigs() ([]*ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*ConfigInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		name := configID(entry.Name())

		config, err := m.LoadConfig(name)
		if err != nil {
			logger.Component("config").WithError(err).WithField("config_id", name).Warn("Skipping invalid map config.")
			continue
		}
		configs = append(configs, config.Info(name))
	}

	sort.Slice(configs, func(i, j int) bool { return configs[i].ConfigID < configs[j].ConfigID })
	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *MapConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops every cached configuration and re-resolves the default.
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*MapConfig)
	m.mu.Unlock()

	def := m.resolveDefault()

	m.mu.Lock()
	m.defaultConfig = def
	m.mu.Unlock()
	return nil
}

// SaveConfig validates config and writes it to disk
func (m *Manager) SaveConfig(name string, config *MapConfig) error {
	if err := ValidateMapConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	name = configID(name)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: bad config id %q", ErrInvalidConfig, name)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(m.configDir, name+".json")
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[name] = config
	m.mu.Unlock()

	return nil
}

// resolveDefault prefers the built-in id on disk, then the first valid file,
// then the built-in map.
func (m *Manager) resolveDefault() *MapConfig {
	if config, err := m.LoadConfig(DefaultConfigID); err == nil {
		return config
	}
	if configs, err := m.ListConfigs(); err == nil && len(configs) > 0 {
		if config, err := m.LoadConfig(configs[0].ConfigID); err == nil {
			return config
		}
	}
	return DefaultMapConfig()
}

func (m *Manager) readConfig(name string) (*MapConfig, error) {
	data, err := os.ReadFile(filepath.Join(m.configDir, name+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MapConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}
	if err := ValidateMapConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &config, nil
}

// configID strips the .json extension from a name or filename.
func configID(name string) string {
	return strings.TrimSuffix(strings.TrimSpace(name), ".json")
}
