package pdfcpu

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sort"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"

	"github.com/jiarana/normadoc/extract"
	"github.com/jiarana/normadoc/model"
)

// RenderRegion rasterizes a page region by compositing the embedded image
// tiles whose placements intersect the region onto an RGBA canvas at the
// target DPI, returning PNG bytes.
//
// pdfcpu has no page rasterizer, so this renders only the raster content of
// the region — which for the figure regions the grouper produces is the
// figure itself. Decoded tiles are paired with placements by resource name
// when the producer preserved names, and by draw order otherwise.
func (d *Document) RenderRegion(page int, bbox model.BBox, dpi float64) (extract.RenderedImage, error) {
	if !bbox.IsValid() {
		return extract.RenderedImage{}, fmt.Errorf("page %d: invalid region", page)
	}

	tiles, err := d.regionTiles(page, bbox)
	if err != nil {
		return extract.RenderedImage{}, err
	}
	if len(tiles) == 0 {
		return extract.RenderedImage{}, fmt.Errorf("page %d: no raster content in region", page)
	}

	scale := dpi / 72.0
	canvas := image.NewRGBA(image.Rect(0, 0,
		pixels(bbox.Width*scale), pixels(bbox.Height*scale)))

	for _, t := range tiles {
		// Page Y grows upward, canvas Y downward.
		x0 := pixels((t.bbox.Left() - bbox.Left()) * scale)
		y0 := pixels((bbox.Top() - t.bbox.Top()) * scale)
		x1 := pixels((t.bbox.Right() - bbox.Left()) * scale)
		y1 := pixels((bbox.Top() - t.bbox.Bottom()) * scale)

		xdraw.ApproxBiLinear.Scale(canvas, image.Rect(x0, y0, x1, y1),
			t.img, t.img.Bounds(), xdraw.Over, nil)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return extract.RenderedImage{}, fmt.Errorf("page %d: encoding region: %w", page, err)
	}

	return extract.RenderedImage{Data: buf.Bytes(), Format: "png"}, nil
}

// tile pairs a decoded embedded image with its page-space placement.
type tile struct {
	img  image.Image
	bbox model.BBox
}

// regionTiles decodes the page's embedded images and pairs them with the
// placements intersecting the region.
func (d *Document) regionTiles(page int, region model.BBox) ([]tile, error) {
	imgs, err := pdfcpu.ExtractPageImages(d.ctx, page, false)
	if err != nil {
		return nil, fmt.Errorf("extracting page %d images: %w", page, err)
	}
	if len(imgs) == 0 {
		return nil, nil
	}

	// Map iteration order is random; object number order matches the draw
	// order these producers emit.
	objNrs := make([]int, 0, len(imgs))
	for nr := range imgs {
		objNrs = append(objNrs, nr)
	}
	sort.Ints(objNrs)

	decoded := make(map[string]image.Image, len(imgs))
	var ordered []image.Image
	for _, nr := range objNrs {
		pi := imgs[nr]
		img, _, err := image.Decode(pi)
		if err != nil {
			continue
		}
		decoded[pi.Name] = img
		ordered = append(ordered, img)
	}
	if len(ordered) == 0 {
		return nil, fmt.Errorf("page %d: no decodable images", page)
	}

	data, err := d.pageContent(page)
	if err != nil {
		return nil, err
	}

	var tiles []tile
	for i, p := range interpret(data).placements {
		bbox := model.NewBBox(p.x, p.y, p.w, p.h)
		if !bbox.Intersects(region) {
			continue
		}
		img := decoded[p.name]
		if img == nil {
			img = ordered[i%len(ordered)]
		}
		tiles = append(tiles, tile{img: img, bbox: bbox})
	}
	return tiles, nil
}

// pixels rounds a scaled page coordinate to a pixel count.
func pixels(v float64) int {
	return int(v + 0.5)
}
