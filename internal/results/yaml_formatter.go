package results

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hannahmoutran/ai-music-metadata/internal/verify"
)

// RunConfig represents the configuration section of the verification YAML
type RunConfig struct {
	DatasetPath string `yaml:"datasetpath"`
	SampleSize  int    `yaml:"samplesize"`
	Timestamp   string `yaml:"timestamp"`
}

// RunReport represents a complete verification run
type RunReport struct {
	Config  RunConfig       `yaml:"config"`
	Summary verify.Summary  `yaml:"summary"`
	Results []verify.Result `yaml:"results"`
}

// SaveToYAML writes a verification run to a timestamped YAML file in the
// verifications/ directory and returns the file's path.
func SaveToYAML(datasetPath string, sampleSize int, results []verify.Result) (string, error) {
	if err := os.MkdirAll("verifications", 0755); err != nil {
		return "", fmt.Errorf("failed to create verifications directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")

	report := RunReport{
		Config: RunConfig{
			DatasetPath: datasetPath,
			SampleSize:  sampleSize,
			Timestamp:   timestamp,
		},
		Summary: verify.Summarize(results),
		Results: results,
	}

	filename := fmt.Sprintf("verifications/run-%s.yaml", timestamp)

	data, err := yaml.Marshal(&report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		absPath = filename
	}
	return absPath, nil
}

// LoadFromYAML reads a previously saved verification run.
func LoadFromYAML(path string) (*RunReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}

	var report RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse results file: %w", err)
	}
	return &report, nil
}
