package pdfcpu

import (
	"github.com/jiarana/normadoc/model"
)

// PageImagePlacements returns the bounding boxes of image placements on a
// page, in draw order. A page without image XObjects yields nothing, so form
// XObject invocations on text-only pages are never misreported as images.
func (d *Document) PageImagePlacements(page int) []model.BBox {
	if !d.hasImages(page) {
		return nil
	}

	data, err := d.pageContent(page)
	if err != nil {
		return nil
	}

	var boxes []model.BBox
	for _, p := range interpret(data).placements {
		boxes = append(boxes, model.NewBBox(p.x, p.y, p.w, p.h))
	}
	return boxes
}
