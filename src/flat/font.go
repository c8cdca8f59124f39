package flat

import (
	"github.com/bradbev/tileworld/src/asset"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Font loads a TrueType face.  With no TtfFile the Go regular font is used.
type Font struct {
	TtfFile asset.Path `filter:"ttf"`
	Options opentype.FaceOptions

	face font.Face
}

func (f *Font) Face() font.Face {
	return f.face
}

func (f *Font) DefaultInitialize() {
	f.Options.Size = 8
	f.Options.DPI = 72
	f.Options.Hinting = font.HintingFull
}

func (f *Font) PostLoad() {
	f.face = nil
	data := goregular.TTF
	if f.TtfFile != "" {
		d, err := asset.ReadFile(f.TtfFile)
		if err != nil {
			log.Printf("font %s: %v", f.TtfFile, err)
			return
		}
		data = d
	}
	tt, err := opentype.Parse(data)
	if err != nil {
		log.Printf("font %s: %v", f.TtfFile, err)
		return
	}
	face, err := opentype.NewFace(tt, &f.Options)
	if err != nil {
		log.Printf("font %s: %v", f.TtfFile, err)
		return
	}
	f.face = face
}
