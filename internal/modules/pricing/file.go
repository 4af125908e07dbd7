// README: YAML pricing overrides for offline quotes and settings review.
package pricing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadOverrides reads a settings document from a YAML file and validates it.
func LoadOverrides(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, fmt.Errorf("reading overrides file: %w", err)
	}
	return ParseOverrides(data)
}

func ParseOverrides(data []byte) (Overrides, error) {
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Overrides{}, fmt.Errorf("parsing overrides YAML: %w", err)
	}
	if err := o.Validate(); err != nil {
		return Overrides{}, err
	}
	return o, nil
}
