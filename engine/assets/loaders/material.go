package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

type MaterialLoader struct{}

// Load reads and decodes a TOML material definition.
func (ml *MaterialLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	mCfg := &metadata.MaterialConfig{}
	if err := toml.Unmarshal(raw, mCfg); err != nil {
		return nil, fmt.Errorf("material file %s: %w", path, err)
	}
	if mCfg.Name == "" {
		mCfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &metadata.Resource{
		ResourceType: metadata.ResourceTypeMaterial,
		Name:         mCfg.Name,
		FullPath:     path,
		DataSize:     uint64(len(raw)),
		Data:         mCfg,
	}, nil
}

func (ml *MaterialLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}
