package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	DeviceFile string
	PlayerFile string
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("MOONRUG_SERVER", "http://localhost:8080"),
		DeviceFile: getEnvOrDefault("MOONRUG_DEVICE_FILE", defaultStateFile("device_id")),
		PlayerFile: getEnvOrDefault("MOONRUG_PLAYER_FILE", defaultStateFile("player_id")),
		Output:     "text",
		Verbose:    false,
	}
}

// LoadDeviceID returns the stored device identifier, empty if none exists yet.
// The server mints one on first registration; SaveDeviceID pins it so the
// username stays bound to this machine.
func (c *Config) LoadDeviceID() (string, error) {
	return c.loadStateFile(c.DeviceFile)
}

// SaveDeviceID persists the device identifier
func (c *Config) SaveDeviceID(deviceID string) error {
	return c.saveStateFile(c.DeviceFile, deviceID)
}

// LoadPlayerID returns the stored player identifier, empty if not registered
func (c *Config) LoadPlayerID() (string, error) {
	return c.loadStateFile(c.PlayerFile)
}

// SavePlayerID persists the player identifier
func (c *Config) SavePlayerID(playerID string) error {
	return c.saveStateFile(c.PlayerFile, playerID)
}

func (c *Config) loadStateFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (c *Config) saveStateFile(path, value string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(value), 0600)
}

func defaultStateFile(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".moonrug", name)
	}
	return filepath.Join(home, ".moonrug", name)
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
