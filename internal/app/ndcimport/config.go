package ndcimport

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds dataset import settings.
type Config struct {
	DatasetPath string `yaml:"dataset_path" env:"NDC_IMPORT_DATASET_PATH" env-default:"./data/ndc.json"`
	ChunkSize   int    `yaml:"chunk_size"   env:"NDC_IMPORT_CHUNK_SIZE"   env-default:"500"`
	DryRun      bool   `yaml:"dry_run"      env:"NDC_IMPORT_DRY_RUN"      env-default:"false"`
}

// LoadConfig reads import config from YAML or environment variables.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("ndc-import config: file %s not found", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("ndc-import config: %w", err)
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("ndc-import config: read env: %w", err)
	}
	return &cfg, nil
}
