package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"golang-congress-scanner/pkg/logger"
)

// ArtifactRepository reads and writes strategy result documents as JSON files.
type ArtifactRepository interface {
	Save(path string, doc interface{}) error
	Load(path string, doc interface{}) error
}

type artifactRepository struct {
	log *logger.Logger
}

// NewArtifactRepository creates a JSON artifact store.
func NewArtifactRepository(log *logger.Logger) ArtifactRepository {
	return &artifactRepository{log: log}
}

func (r *artifactRepository) Save(path string, doc interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode artifact: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", path, err)
	}
	r.log.Info("Artifact saved", logger.StringField("path", path))
	return nil
}

func (r *artifactRepository) Load(path string, doc interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read artifact %s: %w", path, err)
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to decode artifact %s: %w", path, err)
	}
	return nil
}
