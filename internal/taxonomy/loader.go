package taxonomy

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultVocabulary []byte

// LoadFromYAML loads a vocabulary from a YAML file and builds the index.
//
// Expected format:
//
//	categories:
//	  programming: [python, java, go]
//	  databases: [postgresql, mysql]
//	aliases:
//	  postgresql: [postgres]
func LoadFromYAML(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: read vocabulary: %w", err)
	}
	return loadBytes(data)
}

// Default builds the index from the embedded vocabulary.
func Default() (*Index, error) {
	return loadBytes(defaultVocabulary)
}

func loadBytes(data []byte) (*Index, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("taxonomy: parse vocabulary: %w", err)
	}
	return Build(&v)
}
