package configuration

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// listTemplate is written when the input list is missing. Every line is a
// comment so a fresh template never produces an accidental sweep.
const listTemplate = `# url-check input list
# One URL per line. Lines starting with '#' are ignored, as is any line
# that does not start with http:// or https://.
#
# https://example.com
# http://intranet.example/status
`

// WriteListTemplate creates a commented starter list at path. It refuses to
// overwrite an existing file.
func WriteListTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("refusing to overwrite existing list %s", path)
	}
	if err := os.WriteFile(path, []byte(listTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write list template %s: %w", path, err)
	}
	return nil
}

// UpdateConfig replaces the settings file at path with the JSON document in
// body, converted to YAML. Used by set-config and the serve API.
func UpdateConfig(path string, body []byte) error {
	v := viper.New()
	v.SetConfigType("json")
	setDefaults(v)
	if err := v.ReadConfig(bytes.NewBuffer(body)); err != nil {
		return fmt.Errorf("failed to parse settings JSON: %w", err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return fmt.Errorf("invalid settings document: %w", err)
	}
	if _, err := s.Resolve(); err != nil {
		return err
	}

	yamlData, err := yaml.Marshal(v.AllSettings())
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	if err := os.WriteFile(path, yamlData, 0644); err != nil {
		return fmt.Errorf("failed to write settings file %s: %w", path, err)
	}

	return nil
}
