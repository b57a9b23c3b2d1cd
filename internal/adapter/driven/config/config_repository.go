package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diillson/commerce-analytics-go/internal/domain/repository"
	"github.com/diillson/commerce-analytics-go/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON e
// valida os campos que têm domínio fechado (engine, as_of, report_type).
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filePath, err)
	}
	return &config, nil
}

func validate(config *types.Config) error {
	config.Engine = strings.ToLower(strings.TrimSpace(config.Engine))
	switch config.Engine {
	case "", types.EngineSQL, types.EngineMemory:
	default:
		return fmt.Errorf("%w: %s", types.ErrUnknownEngine, config.Engine)
	}

	if config.AsOf != "" {
		if _, err := time.Parse("2006-01-02", config.AsOf); err != nil {
			return fmt.Errorf("%w: %s", types.ErrInvalidAsOf, config.AsOf)
		}
	}

	for i, t := range config.ReportType {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "json" && t != "pdf" && t != "csv" {
			return fmt.Errorf("unsupported report type: %s", t)
		}
		config.ReportType[i] = t
	}
	return nil
}
