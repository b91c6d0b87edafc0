package testbed

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/lumen/engine/assets"
	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
	"github.com/spaghettifunk/lumen/engine/renderer/materials"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
	"github.com/spaghettifunk/lumen/engine/scene"
	"github.com/spaghettifunk/lumen/engine/systems"
)

/**
 * @brief A small scene used to exercise the engine end to end: a node
 * hierarchy with animated transforms, a camera, a material with a live
 * uniform buffer, and the asset pipeline with hot reload.
 */
type TestGame struct {
	AssetsDir string

	assetManager   *assets.AssetManager
	textureSystem  *systems.TextureSystem
	materialSystem *systems.MaterialSystem

	root     *scene.Node
	camera   *scene.Camera
	orbiter  *scene.Node
	points   *scene.Node
	material *materials.PointsMaterial

	frame uint64
}

func NewTestGame(assetsDir string) *TestGame {
	return &TestGame{
		AssetsDir: assetsDir,
	}
}

func (tg *TestGame) Initialize() error {
	core.EventInitialize()
	core.MetricsInitialize()

	am, err := assets.NewAssetManager()
	if err != nil {
		return err
	}
	if err := am.Initialize(tg.AssetsDir); err != nil {
		core.LogWarn("asset watching disabled: %v", err)
	}
	tg.assetManager = am

	ts, err := systems.NewTextureSystem(&systems.TextureSystemConfig{MaxTextureCount: 1024}, am)
	if err != nil {
		return err
	}
	tg.textureSystem = ts

	ms, err := systems.NewMaterialSystem(&systems.MaterialSystemConfig{MaxMaterialCount: 256}, am, ts)
	if err != nil {
		return err
	}
	tg.materialSystem = ms

	core.EventRegister(core.EVENT_CODE_MATERIAL_PROPERTY_CHANGED, tg, onMaterialChanged)

	tg.buildScene()
	return nil
}

func (tg *TestGame) buildScene() {
	tg.root = scene.NewNode("root")

	tg.camera = scene.NewCamera("main")
	tg.camera.Position = math.NewVec3(0, 2, 10)
	if err := tg.root.Add(tg.camera.Node); err != nil {
		core.LogError("failed to attach camera: %v", err)
	}

	tg.orbiter = scene.NewNode("orbiter")
	tg.orbiter.Position = math.NewVec3(3, 0, 0)
	if err := tg.root.Add(tg.orbiter); err != nil {
		core.LogError("failed to attach orbiter: %v", err)
	}

	tg.points = scene.NewNode("points")
	tg.points.Scale = math.NewVec3(0.5, 0.5, 0.5)
	if err := tg.orbiter.Add(tg.points); err != nil {
		core.LogError("failed to attach points: %v", err)
	}

	material, err := tg.materialSystem.AcquireFromConfig(&metadata.MaterialConfig{
		Name:        "demo_points",
		Color:       []float32{1.0, 0.5, 0.0, 1.0},
		Size:        8,
		ColorMode:   "uniform",
		SizeSpace:   "world",
		AutoRelease: true,
	})
	if err != nil {
		core.LogWarn("falling back to default material: %v", err)
		material = tg.materialSystem.GetDefaultMaterial()
	}
	tg.material = material
}

// Update advances the demo by one frame: animate transforms, refresh
// world matrices from the root, point the camera at the moving node
// and apply any assets changed on disk.
func (tg *TestGame) Update(deltaTime float64) error {
	tg.frame++

	angle := float32(deltaTime) * float32(tg.frame)
	tg.orbiter.Rotation = math.NewQuatFromAxisAngle(math.NewVec3Up(), angle)
	tg.orbiter.UpdateLocalMatrix()

	tg.root.UpdateWorldMatrix(false, true, false)

	tg.camera.LookAt(tg.orbiter.WorldMatrix().Position())

	// Fade the material in over the first frames. The transparency
	// flag tracks the alpha automatically.
	if tg.frame < 100 {
		alpha := float32(tg.frame) / 100.0
		c := tg.material.Color()
		tg.material.SetColor(math.NewVec4(c.X, c.Y, c.Z, alpha))
	}

	tg.flushUniforms()
	tg.applyAssetChanges()
	return nil
}

// flushUniforms uploads the dirty byte range of the live material and
// clears its pending state, standing in for a GPU buffer write.
func (tg *TestGame) flushUniforms() {
	buffer := tg.material.UniformBuffer()
	if offset, size, ok := buffer.PendingRange(); ok {
		payload := buffer.Bytes()[offset : offset+size]
		core.LogDebug("uploading %d uniform bytes at offset %d: %x", size, offset, payload)
		buffer.ClearPending()
	}
	if sampler := tg.material.MapSampler(); sampler != nil {
		core.LogDebug("binding map %q with filters min=%s mag=%s",
			sampler.Texture.Name, sampler.FilterMinify, sampler.FilterMagnify)
	}
}

func (tg *TestGame) applyAssetChanges() {
	for _, change := range tg.assetManager.DrainReloads() {
		core.LogInfo("asset changed on disk: %s", change.Path)
		if change.Type == metadata.ResourceTypeImage {
			// Textures are acquired by bare name, not path.
			name := strings.TrimSuffix(filepath.Base(change.Path), filepath.Ext(change.Path))
			if err := tg.textureSystem.Reload(name); err != nil {
				core.LogDebug("no live texture for %s: %v", change.Path, err)
			}
		}
	}
}

// ResolvePick decodes a packed pick value from the renderer and looks
// up the node it refers to.
func (tg *TestGame) ResolvePick(value uint64) (*scene.Node, metadata.PickInfo) {
	info := tg.material.DecodePick(value)
	return scene.FindNodeByID(info.ObjectID), info
}

func onMaterialChanged(code core.SystemEventCode, sender, listener interface{}, data core.EventContext) bool {
	core.LogDebug("material %d changed property %q", data.ObjectID, data.Name)
	return false
}

func (tg *TestGame) Shutdown() error {
	snapshot := core.MetricsSnapshot()
	core.LogInfo("frames=%d matrixRecomputes=%d uniformFlushes=%d attached=%d detached=%d",
		tg.frame, snapshot.WorldMatrixRecomputes, snapshot.UniformFlushes,
		snapshot.NodesAttached, snapshot.NodesDetached)

	core.EventUnregister(core.EVENT_CODE_MATERIAL_PROPERTY_CHANGED, tg, onMaterialChanged)

	tg.root.Destroy()
	if err := tg.materialSystem.Shutdown(); err != nil {
		return fmt.Errorf("material system shutdown: %w", err)
	}
	if err := tg.textureSystem.Shutdown(); err != nil {
		return fmt.Errorf("texture system shutdown: %w", err)
	}
	if err := tg.assetManager.Shutdown(); err != nil {
		return fmt.Errorf("asset manager shutdown: %w", err)
	}
	core.EventShutdown()
	return nil
}
