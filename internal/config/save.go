package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfigYAML = `# ac configuration
#
# registry_path: where the app registry database lives.
#registry_path: ~/.config/ac/registry.db

# search_path: extra directories probed for <app>/ac.yaml when an app's
# registered location no longer holds a manifest.
#search_path: []

# debug: write debug logs to log_path.
#debug: false

# flags: feature flag overrides.
#flags:
#  manifest-validate: true
#  grammar-cache: true

# tracing: per-invocation tracing.
#tracing:
#  enabled: false
#  exporter: file
`

// WriteDefaultConfig writes a commented default config file at path unless
// one already exists. The write goes through a temp file and rename so a
// concurrent invocation never sees a half-written config.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".config.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.WriteString(defaultConfigYAML); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
