package flat

import (
	"image/color"
	"strings"
	"text/template"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

// TextComponent draws a text/template evaluated against the last data given
// to FillTemplate.  The text sits at the owner's screen position plus
// Offset and is not scaled by the camera.
type TextComponent struct {
	ComponentBase
	Font         *Font
	Color        color.RGBA
	TextTemplate string
	OffsetX      float64
	OffsetY      float64

	lastTemplate string
	tmpl         *template.Template
	lastEval     strings.Builder
}

func (t *TextComponent) parse() {
	if t.tmpl != nil && t.lastTemplate == t.TextTemplate {
		return
	}
	t.lastTemplate = t.TextTemplate
	tmpl, err := template.New("text").Parse(t.TextTemplate)
	if err != nil {
		// malformed templates show their error instead of the text
		t.tmpl = nil
		t.lastEval.Reset()
		t.lastEval.WriteString("Error:" + err.Error())
		return
	}
	t.tmpl = tmpl
}

func (t *TextComponent) FillTemplate(data any) {
	t.parse()
	if t.tmpl == nil {
		return
	}
	t.lastEval.Reset()
	if err := t.tmpl.Execute(&t.lastEval, data); err != nil {
		t.lastEval.Reset()
		t.lastEval.WriteString("Error:" + err.Error())
	}
}

func (t *TextComponent) String() string {
	return t.lastEval.String()
}

func (t *TextComponent) Draw(screen *ebiten.Image, view ebiten.GeoM) {
	if t.Font == nil || t.Font.Face() == nil || t.lastEval.Len() == 0 {
		return
	}
	loc := t.Owner().GetTransform().Location
	x, y := view.Apply(loc.X, loc.Y)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x+t.OffsetX, y+t.OffsetY)
	op.ColorScale.ScaleWithColor(t.Color)
	text.DrawWithOptions(screen, t.lastEval.String(), t.Font.Face(), op)
}
