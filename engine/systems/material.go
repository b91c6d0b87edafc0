package systems

import (
	"fmt"

	"github.com/spaghettifunk/lumen/engine/assets"
	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/renderer/materials"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

type MaterialSystemConfig struct {
	/** @brief The maximum number of loaded materials. */
	MaxMaterialCount uint32
}

/**
 * @brief Owns every loaded material. Materials are acquired by name
 * and reference counted; releasing the last reference of an
 * auto-releasing material destroys it. The default material always
 * exists and is never released.
 */
type MaterialSystem struct {
	Config          *MaterialSystemConfig
	DefaultMaterial *materials.PointsMaterial
	// Array of registered materials.
	RegisteredMaterials []*materials.PointsMaterial
	// Hashtable for material lookups.
	RegisteredMaterialTable map[string]*metadata.MaterialReference

	assetManager  *assets.AssetManager
	textureSystem *TextureSystem
}

func NewMaterialSystem(config *MaterialSystemConfig, am *assets.AssetManager, ts *TextureSystem) (*MaterialSystem, error) {
	if config.MaxMaterialCount == 0 {
		err := fmt.Errorf("func NewMaterialSystem - config.MaxMaterialCount must be > 0")
		core.LogFatal(err.Error())
		return nil, err
	}

	ms := &MaterialSystem{
		Config:                  config,
		RegisteredMaterials:     make([]*materials.PointsMaterial, config.MaxMaterialCount),
		RegisteredMaterialTable: make(map[string]*metadata.MaterialReference),
		DefaultMaterial:         materials.NewPointsMaterial(metadata.DefaultMaterialName, metadata.MaterialVariantDefault),
		assetManager:            am,
		textureSystem:           ts,
	}

	return ms, nil
}

func (ms *MaterialSystem) Shutdown() error {
	for i := uint32(0); i < ms.Config.MaxMaterialCount; i++ {
		if ms.RegisteredMaterials[i] != nil {
			ms.destroyMaterial(i)
		}
	}
	ms.DefaultMaterial.Destroy()
	return nil
}

/**
 * @brief Attempts to acquire a material with the given name. If it has
 * not yet been loaded, its definition file is read and the material
 * created from it. If the material _is_ found, its reference counter
 * is incremented.
 */
func (ms *MaterialSystem) Acquire(name string) (*materials.PointsMaterial, error) {
	if name == metadata.DefaultMaterialName {
		return ms.DefaultMaterial, nil
	}

	ref, exists := ms.RegisteredMaterialTable[name]
	if exists && ref.Handle != metadata.InvalidID {
		ref.ReferenceCount++
		return ms.RegisteredMaterials[ref.Handle], nil
	}

	resource, err := ms.assetManager.LoadAsset(name, metadata.ResourceTypeMaterial, nil)
	if err != nil {
		return nil, err
	}
	config, ok := resource.Data.(*metadata.MaterialConfig)
	if !ok {
		return nil, fmt.Errorf("failed to type cast resource.Data to `*metadata.MaterialConfig`")
	}
	if config.Name == "" {
		config.Name = name
	}

	material, err := ms.AcquireFromConfig(config)
	if err != nil {
		return nil, err
	}
	if err := ms.assetManager.UnloadAsset(resource); err != nil {
		core.LogWarn("failed to unload material resource '%s'", name)
	}
	return material, nil
}

/**
 * @brief Creates and registers a material from an in-memory
 * configuration. Referenced textures are acquired from the texture
 * system; missing ones fall back to the default texture.
 */
func (ms *MaterialSystem) AcquireFromConfig(config *metadata.MaterialConfig) (*materials.PointsMaterial, error) {
	if config.Name == metadata.DefaultMaterialName {
		return ms.DefaultMaterial, nil
	}

	ref, exists := ms.RegisteredMaterialTable[config.Name]
	if exists && ref.Handle != metadata.InvalidID {
		ref.ReferenceCount++
		return ms.RegisteredMaterials[ref.Handle], nil
	}
	if !exists {
		ref = &metadata.MaterialReference{Handle: metadata.InvalidID}
		ms.RegisteredMaterialTable[config.Name] = ref
	}

	handle := metadata.InvalidID
	for i := uint32(0); i < ms.Config.MaxMaterialCount; i++ {
		if ms.RegisteredMaterials[i] == nil {
			handle = i
			break
		}
	}
	if handle == metadata.InvalidID {
		err := fmt.Errorf("material system cannot hold anymore materials. Adjust configuration to allow more")
		core.LogError(err.Error())
		return nil, err
	}

	material, err := materials.NewPointsMaterialFromConfig(config)
	if err != nil {
		return nil, err
	}

	if config.MapName != "" {
		texture, err := ms.textureSystem.Acquire(config.MapName, true)
		if err != nil {
			core.LogWarn("unable to load texture '%s' for material '%s', using default", config.MapName, config.Name)
			texture = ms.textureSystem.GetDefaultTexture()
		}
		material.SetMap(texture)
	}
	if config.SpriteName != "" {
		texture, err := ms.textureSystem.Acquire(config.SpriteName, true)
		if err != nil {
			core.LogWarn("unable to load texture '%s' for material '%s', using default", config.SpriteName, config.Name)
			texture = ms.textureSystem.GetDefaultTexture()
		}
		if err := material.SetSprite(texture); err != nil {
			material.Destroy()
			return nil, err
		}
	}

	ref.Handle = handle
	ref.ReferenceCount++
	ref.AutoRelease = config.AutoRelease
	ms.RegisteredMaterials[handle] = material

	core.LogDebug("material '%s' created, handle %d", config.Name, handle)
	return material, nil
}

// Release decrements the reference count for the named material,
// destroying it when the count reaches zero and it is auto-releasing.
func (ms *MaterialSystem) Release(name string) {
	// Ignore release requests for the default material.
	if name == metadata.DefaultMaterialName {
		return
	}

	ref, exists := ms.RegisteredMaterialTable[name]
	if !exists || ref.ReferenceCount == 0 {
		core.LogWarn("tried to release non-existent material: '%s'", name)
		return
	}

	ref.ReferenceCount--
	if ref.ReferenceCount == 0 && ref.AutoRelease {
		ms.destroyMaterial(ref.Handle)
		ref.Handle = metadata.InvalidID
		ref.AutoRelease = false
	}
}

func (ms *MaterialSystem) GetDefaultMaterial() *materials.PointsMaterial {
	return ms.DefaultMaterial
}

func (ms *MaterialSystem) destroyMaterial(handle uint32) {
	material := ms.RegisteredMaterials[handle]
	if material == nil {
		return
	}
	// Give back texture references before the material goes away.
	if m := material.Map(); m != nil {
		ms.textureSystem.Release(m.Name)
	}
	if s := material.Sprite(); s != nil {
		ms.textureSystem.Release(s.Name)
	}
	material.Destroy()
	ms.RegisteredMaterials[handle] = nil
}
