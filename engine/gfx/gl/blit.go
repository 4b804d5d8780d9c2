package glbackend

import (
	"image"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Blitter copies CPU-side images to the default framebuffer through a
// texture-backed read framebuffer. It is used to present software-rendered
// content (the fallback gradient) in a GL window. Until Init has succeeded
// a Blitter issues no GL calls.
type Blitter struct {
	tex    uint32
	fbo    uint32
	width  int
	height int
}

// Blit uploads img and stretches it over a dstW x dstH default framebuffer.
// It reports whether anything was drawn.
func (b *Blitter) Blit(img *image.RGBA, dstW, dstH int) bool {
	if !Ready() {
		return false
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w < 1 || h < 1 || dstW < 1 || dstH < 1 {
		return false
	}
	if b.tex == 0 {
		gl.GenTextures(1, &b.tex)
		gl.GenFramebuffers(1, &b.fbo)
	}

	gl.BindTexture(gl.TEXTURE_2D, b.tex)
	if w != b.width || h != b.height {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		b.width, b.height = w, h

		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, b.fbo)
		gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, b.tex, 0)
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, b.fbo)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	// Image rows run top-down, GL rows bottom-up: flip on the way out.
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, int32(w), int32(h), 0, int32(dstH), int32(dstW), 0, gl.COLOR_BUFFER_BIT, gl.LINEAR)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	return true
}

func (b *Blitter) Release() {
	if !Ready() {
		return
	}
	if b.fbo != 0 {
		gl.DeleteFramebuffers(1, &b.fbo)
		b.fbo = 0
	}
	if b.tex != 0 {
		gl.DeleteTextures(1, &b.tex)
		b.tex = 0
	}
	b.width, b.height = 0, 0
}
