package lifecycle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Environment variable keys the deployed handler reads.
const (
	EnvPhoneNumParam = "PHONE_NUM_PARAM"
	EnvS3Bucket      = "S3_BUCKET"
)

// ConfigPath returns the chalice config file location under the app dir.
func ConfigPath(appDir string) string {
	return filepath.Join(appDir, ".chalice", "config.json")
}

// UpdateChaliceConfig rewrites the environment variable bindings in the
// chalice config, preserving every other key. Passing empty values blanks
// the bindings for teardown.
func UpdateChaliceConfig(appDir, paramName, bucket string) error {
	path := ConfigPath(appDir)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read chalice config %s: %w", path, err)
	}

	var config map[string]any
	if err := json.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse chalice config %s: %w", path, err)
	}

	envVars, ok := config["environment_variables"].(map[string]any)
	if !ok {
		envVars = map[string]any{}
		config["environment_variables"] = envVars
	}
	envVars[EnvPhoneNumParam] = paramName
	envVars[EnvS3Bucket] = bucket

	updated, err := json.MarshalIndent(config, "", "\t")
	if err != nil {
		return fmt.Errorf("failed to encode chalice config: %w", err)
	}
	updated = append(updated, '\n')

	if err := os.WriteFile(path, updated, 0o644); err != nil {
		return fmt.Errorf("failed to write chalice config %s: %w", path, err)
	}

	return nil
}
