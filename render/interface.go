package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ListenerID identifies a registered mutation listener
type ListenerID uint64

// Image is the raster the drawing goroutine mutates
// Implementations guard their pixels internally: DrawTo and Snapshot may run
// on the event goroutine while drawing continues on another
type Image interface {
	// Bounds returns the raster size
	Bounds() image.Rectangle

	// DrawTo copies the raster into dst starting at dst.Bounds().Min
	DrawTo(dst draw.Image)

	// Snapshot returns an independent copy of the raster
	Snapshot() *image.RGBA

	// Fill paints the whole raster with c
	Fill(c color.Color)

	// Save writes the raster to path as PNG
	Save(path string) error

	// AddListener registers fn to run after every mutation
	// fn runs on the mutating goroutine with no image lock held
	AddListener(fn func()) ListenerID

	// RemoveListener unregisters a listener; unknown ids are ignored
	RemoveListener(id ListenerID)
}
