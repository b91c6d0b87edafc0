package loaders

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

type ImageLoader struct{}

// Load decodes an image file into tightly packed RGBA pixels.
func (il *ImageLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	flipY := false
	if p, ok := params.(*metadata.ImageResourceParams); ok && p != nil {
		flipY = p.FlipY
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("image file %s: %w", path, err)
	}

	bounds := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	pixels := rgba.Pix
	if flipY {
		pixels = flipVertically(rgba.Pix, bounds.Dx(), bounds.Dy())
	}

	data := &metadata.ImageResourceData{
		ChannelCount: 4,
		Width:        uint32(bounds.Dx()),
		Height:       uint32(bounds.Dy()),
		Pixels:       pixels,
	}

	return &metadata.Resource{
		ResourceType: metadata.ResourceTypeImage,
		Name:         path,
		FullPath:     path,
		DataSize:     uint64(len(pixels)),
		Data:         data,
	}, nil
}

func (il *ImageLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}

func flipVertically(pixels []uint8, width, height int) []uint8 {
	rowSize := width * 4
	flipped := make([]uint8, len(pixels))
	for y := 0; y < height; y++ {
		srcRow := pixels[y*rowSize : (y+1)*rowSize]
		dstStart := (height - 1 - y) * rowSize
		copy(flipped[dstStart:dstStart+rowSize], srcRow)
	}
	return flipped
}
