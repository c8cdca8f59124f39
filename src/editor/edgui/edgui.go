// edgui provides some helper functions for the editor UI
// The functions here should follow imgui style.

package edgui

import (
	"fmt"

	"github.com/inkyblackness/imgui-go/v4"
)

const itemWidth = 60

func DragFloat64(label string, v *float64) bool {
	f32 := float32(*v)
	ret := false
	imgui.Text(label)
	imgui.SameLine()
	WithIDPtr(v, func() {
		WithItemWidth(itemWidth, func() {
			ret = imgui.DragFloat("", &f32)
		})
	})
	if ret {
		*v = float64(f32)
	}
	return ret
}

// DragInt edits an int, never letting it drop below min.
func DragInt(label string, v *int, min int) bool {
	i32 := int32(*v)
	ret := false
	imgui.Text(label)
	imgui.SameLine()
	WithIDPtr(v, func() {
		WithItemWidth(itemWidth, func() {
			ret = imgui.DragInt("", &i32)
		})
	})
	if ret {
		*v = int(i32)
		if *v < min {
			*v = min
		}
	}
	return ret
}

func Text(format string, args ...any) {
	t := fmt.Sprintf(format, args...)
	imgui.Text(t)
}

func InputText(label string, text *string) bool {
	imgui.Text(label)
	imgui.SameLine()

	return imgui.InputText("##"+label, text)
}

// WithIDPtr is used to prevent two inputs from being treated as the
// same input within imgui.
func WithIDPtr[T any](ptr *T, body func()) {
	addr := fmt.Sprintf("%p", ptr)
	imgui.PushID(addr)
	defer imgui.PopID()
	body()
}

func WithItemWidth(width float32, body func()) {
	imgui.PushItemWidth(width)
	defer imgui.PopItemWidth()
	body()
}

func DragFloat2(
	label string,
	label1 string, v1 *float64,
	label2 string, v2 *float64) (ret bool) {

	imgui.Text(label)
	imgui.SameLine()
	ret = DragFloat64(label1, v1) || ret
	imgui.SameLine()
	ret = DragFloat64(label2, v2) || ret
	return ret
}

func DragInt2(
	label string,
	label1 string, v1 *int,
	label2 string, v2 *int) (ret bool) {

	imgui.Text(label)
	imgui.SameLine()
	ret = DragInt(label1, v1, 0) || ret
	imgui.SameLine()
	ret = DragInt(label2, v2, 0) || ret
	return ret
}
