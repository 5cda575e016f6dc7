package render

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-adventure/internal/assets"
	"github.com/vovakirdan/tui-adventure/internal/core"
)

// Default world pixels per terminal cell. Terminal cells are about twice as
// tall as wide.
const (
	DefaultCellW = 8
	DefaultCellH = 16
)

type texture struct {
	path   string
	glyphs []rune
	color  core.Color

	// Sprite-sheet geometry; zero for tile textures.
	frameW, frameH, columns int
}

func (t *texture) sprite() bool {
	return t.frameW > 0 && t.frameH > 0
}

// glyph picks the rune for a source rectangle. Sprite sheets map the
// rectangle back to a frame index; tiles always use their first glyph.
func (t *texture) glyph(src core.Rect) rune {
	if !t.sprite() || len(t.glyphs) == 1 {
		return t.glyphs[0]
	}
	cols := max(t.columns, 1)
	idx := (src.Y/t.frameH)*cols + src.X/t.frameW
	return t.glyphs[idx%len(t.glyphs)]
}

type overlay struct {
	title string
	lines []string
}

// Terminal renders into a core.Screen cell buffer. Tiles fill every cell
// they cover; sprites draw one glyph at the center of their destination.
type Terminal struct {
	screen   *core.Screen
	camera   *Camera
	textures []texture
	overlay  *overlay

	frames  int
	skipped int
}

// NewTerminal creates a renderer drawing into screen.
func NewTerminal(screen *core.Screen, cellW, cellH int) *Terminal {
	if cellW <= 0 {
		cellW = DefaultCellW
	}
	if cellH <= 0 {
		cellH = DefaultCellH
	}
	return &Terminal{
		screen: screen,
		camera: NewCamera(cellW, cellH, screen.Width(), screen.Height()),
	}
}

// Screen returns the buffer being drawn into.
func (t *Terminal) Screen() *core.Screen {
	return t.screen
}

// Camera returns the renderer's camera.
func (t *Terminal) Camera() *Camera {
	return t.camera
}

// Frames returns the number of presented frames.
func (t *Terminal) Frames() int {
	return t.frames
}

// Skipped returns how many draw calls named an unknown texture.
func (t *Terminal) Skipped() int {
	return t.skipped
}

// LoadTexture registers a texture and returns its handle. Textures without
// glyphs draw as '#'.
func (t *Terminal) LoadTexture(tex assets.Texture) (core.TextureID, error) {
	glyphs := tex.Glyphs
	if len(glyphs) == 0 {
		glyphs = []rune{'#'}
	}
	for _, g := range glyphs {
		if g == utf8.RuneError {
			return 0, fmt.Errorf("render: texture %s has an invalid glyph", tex.Path)
		}
	}
	t.textures = append(t.textures, texture{
		path:    tex.Path,
		glyphs:  glyphs,
		color:   tex.Color,
		frameW:  tex.FrameWidth,
		frameH:  tex.FrameHeight,
		columns: tex.Columns,
	})
	return core.TextureID(len(t.textures)), nil
}

// Clear blanks the buffer and follows any screen resize.
func (t *Terminal) Clear() {
	t.screen.Clear()
	t.camera.Resize(t.screen.Width(), t.screen.Height())
	t.overlay = nil
}

// Present finishes the frame, drawing the overlay on top.
func (t *Terminal) Present() {
	if t.overlay != nil {
		t.drawOverlay()
	}
	t.frames++
}

// SetWorldBounds limits the camera to the world.
func (t *Terminal) SetWorldBounds(w, h int) {
	t.camera.SetWorldBounds(w, h)
}

// CameraLookAt centers the view on a world position.
func (t *Terminal) CameraLookAt(p core.Point) {
	t.camera.LookAt(p)
}

// ScreenToWorld maps a cell to the world pixel at its center.
func (t *Terminal) ScreenToWorld(p core.Point) core.Point {
	return t.camera.ScreenToWorld(p)
}

// RenderTexture draws a texture region at a world destination. Unknown
// handles are skipped.
func (t *Terminal) RenderTexture(id core.TextureID, src, dst core.Rect) {
	if id <= 0 || int(id) > len(t.textures) {
		t.skipped++
		return
	}
	tex := &t.textures[id-1]
	g := tex.glyph(src)

	if tex.sprite() {
		cx, cy := dst.Center()
		at := t.camera.WorldToScreen(core.Pt(cx, cy))
		t.screen.SetColor(at.X, at.Y, g, tex.color)
		return
	}

	cells := t.camera.CellRect(dst)
	if cells.Empty() {
		// Tiles smaller than a cell still claim the cell they start in.
		at := t.camera.WorldToScreen(core.Pt(dst.X, dst.Y))
		cells = core.NewRect(at.X, at.Y, 1, 1)
	}
	t.screen.DrawRect(cells, g, tex.color)
}

// DrawOverlay shows a centered message box on top of this frame.
func (t *Terminal) DrawOverlay(title string, lines ...string) {
	t.overlay = &overlay{title: title, lines: lines}
}

func (t *Terminal) drawOverlay() {
	o := t.overlay
	width := utf8.RuneCountInString(o.title)
	for _, l := range o.lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	width += 4
	height := len(o.lines) + 4

	x := (t.screen.Width() - width) / 2
	y := (t.screen.Height() - height) / 2
	box := core.NewRect(x, y, width, height)

	t.screen.DrawRect(box, ' ', core.ColorDefault)
	t.screen.DrawBox(box, core.ColorBrightWhite)
	t.screen.DrawTextColor(x+(width-utf8.RuneCountInString(o.title))/2, y+1, o.title, core.ColorBrightYellow)
	for i, l := range o.lines {
		t.screen.DrawText(x+2, y+3+i, l)
	}
}
