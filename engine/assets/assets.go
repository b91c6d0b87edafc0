package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/lumen/engine/assets/loaders"
	"github.com/spaghettifunk/lumen/engine/containers"
	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

/**
 * @brief A change to an asset on disk, queued for the host to process
 * on its own thread. The watcher goroutine only ever enqueues; all
 * reload work happens on the caller's thread.
 */
type AssetEvent struct {
	Path string
	Type metadata.ResourceType
}

/** @brief How many pending asset changes are buffered before new ones are dropped. */
const reloadQueueSize = 256

type AssetManager struct {
	assetsDir string
	assets    map[string]AssetInfo
	loaders   map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	reloads  *containers.RingQueue[AssetEvent]
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		fsnotify: fsWatch,
		reloads:  containers.NewRingQueue[AssetEvent](reloadQueueSize),
		done:     make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize(assetsDir string) error {
	am.assetsDir = assetsDir

	// Register loaders
	am.registerLoader(metadata.ResourceTypeMaterial, &loaders.MaterialLoader{})
	am.registerLoader(metadata.ResourceTypeImage, &loaders.ImageLoader{})

	go am.start()

	return am.addRecursive(assetsDir)
}

func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	return nil
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	return am.watchRecursive(name, false)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// LoadAsset loads a named asset using the loader registered for its
// type. Material names resolve to materials/<name>.toml, image names
// to textures/<name>.png (falling back to .jpg).
func (am *AssetManager) LoadAsset(name string, resourceType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	var path string
	switch resourceType {
	case metadata.ResourceTypeMaterial:
		path = filepath.Join(am.assetsDir, "materials", fmt.Sprintf("%s.toml", name))
	case metadata.ResourceTypeImage:
		path = filepath.Join(am.assetsDir, "textures", fmt.Sprintf("%s.png", name))
		if _, err := os.Stat(path); err != nil {
			path = filepath.Join(am.assetsDir, "textures", fmt.Sprintf("%s.jpg", name))
		}
	default:
		return nil, fmt.Errorf("unknown resource type: %d", resourceType)
	}

	loader, loaderExists := am.loaders[resourceType]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %d", resourceType)
	}

	am.mutex.Lock()
	am.assets[path] = AssetInfo{Path: path, Type: resourceType, LastLoaded: time.Now()}
	am.mutex.Unlock()

	return loader.Load(path, resourceType, params)
}

func (am *AssetManager) UnloadAsset(resource *metadata.Resource) error {
	loader, ok := am.loaders[resource.ResourceType]
	if !ok {
		return fmt.Errorf("no loader registered for asset type: %d", resource.ResourceType)
	}
	return loader.Unload(resource)
}

// DrainReloads pops queued on-disk changes, most recent last. The host
// calls this on its update thread and decides what to reload.
func (am *AssetManager) DrainReloads() []AssetEvent {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	var events []AssetEvent
	for {
		e, err := am.reloads.Dequeue()
		if err != nil {
			return events
		}
		events = append(events, e)
	}
}

func (am *AssetManager) start() {
	for {
		select {
		case e := <-am.fsnotify.Events:
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					am.watchRecursive(e.Name, false)
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}
			if e.Op&fsnotify.Remove != 0 {
				am.removeAsset(e.Name)
				am.fsnotify.Remove(e.Name)
			}

		case e := <-am.fsnotify.Errors:
			core.LogError(e.Error())

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				return am.fsnotify.Remove(walkPath)
			}
			return am.fsnotify.Add(walkPath)
		}
		am.indexAsset(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file.
func (am *AssetManager) handleFileEvent(path string) {
	assetType := am.indexAsset(path)
	if assetType == metadata.ResourceTypeNone {
		return
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	if err := am.reloads.Enqueue(AssetEvent{Path: path, Type: assetType}); err != nil {
		core.LogWarn("asset reload queue full, dropping change for %s", path)
	}
}

func (am *AssetManager) indexAsset(path string) metadata.ResourceType {
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return assetType
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
	return assetType
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, path)
}

func determineAssetType(path string) metadata.ResourceType {
	switch filepath.Ext(path) {
	case ".png", ".jpg", ".bmp":
		return metadata.ResourceTypeImage
	case ".toml":
		return metadata.ResourceTypeMaterial
	default:
		return metadata.ResourceTypeNone
	}
}
