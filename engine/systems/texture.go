package systems

import (
	"fmt"

	"github.com/spaghettifunk/lumen/engine/assets"
	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

type TextureSystemConfig struct {
	/** @brief The maximum number of textures that can be loaded at once. */
	MaxTextureCount uint32
}

/**
 * @brief Owns every loaded texture. Textures are acquired by name and
 * reference counted; a texture whose count drops to zero is destroyed
 * when it was acquired with autoRelease. The default checkerboard
 * texture is always available and never released.
 */
type TextureSystem struct {
	Config         *TextureSystemConfig
	DefaultTexture *metadata.Texture
	// Array of registered textures.
	RegisteredTextures []*metadata.Texture
	// Hashtable for texture lookups.
	RegisteredTextureTable map[string]*metadata.TextureReference

	assetManager *assets.AssetManager
}

func NewTextureSystem(config *TextureSystemConfig, am *assets.AssetManager) (*TextureSystem, error) {
	if config.MaxTextureCount == 0 {
		err := fmt.Errorf("func NewTextureSystem - config.MaxTextureCount must be > 0")
		core.LogFatal(err.Error())
		return nil, err
	}

	ts := &TextureSystem{
		Config:                 config,
		RegisteredTextures:     make([]*metadata.Texture, config.MaxTextureCount),
		RegisteredTextureTable: make(map[string]*metadata.TextureReference),
		DefaultTexture:         metadata.NewDefaultTexture(),
		assetManager:           am,
	}

	// Invalidate all textures in the array.
	for i := uint32(0); i < config.MaxTextureCount; i++ {
		ts.RegisteredTextures[i] = &metadata.Texture{
			Handle:     metadata.InvalidID,
			Generation: metadata.InvalidID,
		}
	}

	return ts, nil
}

func (ts *TextureSystem) Shutdown() error {
	for i := uint32(0); i < ts.Config.MaxTextureCount; i++ {
		t := ts.RegisteredTextures[i]
		if t.Generation != metadata.InvalidID {
			ts.destroyTexture(t)
		}
	}
	return nil
}

/**
 * @brief Attempts to acquire a texture with the given name. If it has
 * not yet been loaded, this triggers it to load from disk. If the
 * texture cannot be found an error is returned. If the texture _is_
 * found and loaded, its reference counter is incremented.
 */
func (ts *TextureSystem) Acquire(name string, autoRelease bool) (*metadata.Texture, error) {
	// Return default texture, but warn about it since this should be
	// returned via GetDefaultTexture.
	if name == metadata.DEFAULT_TEXTURE_NAME {
		core.LogWarn("texture system Acquire called for default texture. Use GetDefaultTexture for texture 'default'")
		return ts.DefaultTexture, nil
	}
	// NOTE: Increments reference count, or creates new entry.
	handle, ok := ts.processTextureReference(name, 1, autoRelease)
	if !ok {
		err := fmt.Errorf("func texture system Acquire failed to obtain a texture handle for '%s'", name)
		core.LogError(err.Error())
		return nil, err
	}
	return ts.RegisteredTextures[handle], nil
}

// Release decrements the reference count for the named texture,
// destroying it when the count reaches zero and it is auto-releasing.
func (ts *TextureSystem) Release(name string) {
	// Ignore release requests for the default texture.
	if name == metadata.DEFAULT_TEXTURE_NAME {
		return
	}
	// NOTE: Decrement the reference count.
	if _, ok := ts.processTextureReference(name, -1, false); !ok {
		core.LogError("texture system Release failed to release texture '%s' properly", name)
	}
}

func (ts *TextureSystem) GetDefaultTexture() *metadata.Texture {
	return ts.DefaultTexture
}

// Reload re-reads the named texture from disk in place, bumping its
// generation so materials holding it can notice the change. Used by
// the host when the asset watcher reports a modified image file.
func (ts *TextureSystem) Reload(name string) error {
	ref, ok := ts.RegisteredTextureTable[name]
	if !ok || ref.Handle == metadata.InvalidID {
		return fmt.Errorf("texture '%s' is not loaded", name)
	}
	return ts.loadTexture(name, ts.RegisteredTextures[ref.Handle])
}

func (ts *TextureSystem) loadTexture(name string, texture *metadata.Texture) error {
	resourceParams := &metadata.ImageResourceParams{FlipY: true}

	imgResource, err := ts.assetManager.LoadAsset(name, metadata.ResourceTypeImage, resourceParams)
	if err != nil {
		core.LogError("failed to load image resource for texture '%s'", name)
		return err
	}

	resourceData, ok := imgResource.Data.(*metadata.ImageResourceData)
	if !ok {
		return fmt.Errorf("failed to type cast imgResource.Data to `*metadata.ImageResourceData`")
	}

	currentGeneration := texture.Generation

	texture.Name = name
	texture.Width = resourceData.Width
	texture.Height = resourceData.Height
	texture.ChannelCount = resourceData.ChannelCount
	texture.Pixels = resourceData.Pixels

	// Check for transparency.
	texture.Flags &^= metadata.TextureFlagBits(metadata.TextureFlagHasTransparency)
	for i := 3; i < len(resourceData.Pixels); i += 4 {
		if resourceData.Pixels[i] < 255 {
			texture.Flags |= metadata.TextureFlagBits(metadata.TextureFlagHasTransparency)
			break
		}
	}

	if currentGeneration == metadata.InvalidID {
		texture.Generation = 0
	} else {
		texture.Generation = currentGeneration + 1
	}

	if err := ts.assetManager.UnloadAsset(imgResource); err != nil {
		core.LogWarn("failed to unload image resource for texture '%s'", name)
	}

	core.LogDebug("successfully loaded texture '%s'", name)
	core.EventFire(core.EVENT_CODE_TEXTURE_LOADED, ts, core.EventContext{
		Name: name,
		U32:  [4]uint32{texture.Generation},
	})

	return nil
}

func (ts *TextureSystem) destroyTexture(texture *metadata.Texture) {
	texture.Handle = metadata.InvalidID
	texture.Generation = metadata.InvalidID
	texture.Pixels = nil
	texture.Name = ""
}

func (ts *TextureSystem) processTextureReference(name string, referenceDiff int8, autoRelease bool) (uint32, bool) {
	outHandle := metadata.InvalidID

	ref, exists := ts.RegisteredTextureTable[name]
	if !exists {
		ref = &metadata.TextureReference{
			Handle: metadata.InvalidID,
		}
		ts.RegisteredTextureTable[name] = ref
	}

	// If the reference count starts off at zero, one of two things can be
	// true. If incrementing references, this means the entry is new. If
	// decrementing, then the texture doesn't exist _if_ not auto-releasing.
	if ref.ReferenceCount == 0 {
		if referenceDiff > 0 {
			// This can only be changed the first time a texture is loaded.
			ref.AutoRelease = autoRelease
		} else {
			if ref.AutoRelease {
				core.LogWarn("tried to release non-existent texture: '%s'", name)
				return 0, false
			}
			core.LogWarn("tried to release a texture where autoRelease=false, but references was already 0")
			// Still count this as a success, but warn about it.
			return 0, true
		}
	}

	ref.ReferenceCount += uint64(referenceDiff)

	// If decrementing, this means a release.
	if referenceDiff < 0 {
		// Destroy the texture when the count hits zero and the reference
		// is set to auto-release.
		if ref.ReferenceCount == 0 && ref.AutoRelease {
			ts.destroyTexture(ts.RegisteredTextures[ref.Handle])
			ref.Handle = metadata.InvalidID
			ref.AutoRelease = false
		}
		return outHandle, true
	}

	// Incrementing. Check if the handle is new or not.
	if ref.Handle == metadata.InvalidID {
		// This means no texture exists here. Find a free slot first.
		for i := uint32(0); i < ts.Config.MaxTextureCount; i++ {
			if ts.RegisteredTextures[i].Handle == metadata.InvalidID {
				ref.Handle = i
				outHandle = i
				break
			}
		}

		// An empty slot was not found, bleat about it and boot out.
		if outHandle == metadata.InvalidID {
			core.LogError("texture system cannot hold anymore textures. Adjust configuration to allow more")
			return 0, false
		}

		t := metadata.NewTexture(name)
		t.Handle = ref.Handle
		t.Generation = metadata.InvalidID
		ts.RegisteredTextures[ref.Handle] = t
		if err := ts.loadTexture(name, t); err != nil {
			// Roll the reference back so a later release of this name
			// can never index a slot that was never filled.
			ref.Handle = metadata.InvalidID
			ref.ReferenceCount -= uint64(referenceDiff)
			ref.AutoRelease = false
			ts.destroyTexture(t)
			core.LogError("failed to load texture '%s'", name)
			return 0, false
		}
	} else {
		outHandle = ref.Handle
	}

	return outHandle, true
}
