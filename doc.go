// Package flint is the graphics-driver layer of a cross-platform
// widget toolkit. It presents one drawing contract — integer logical
// coordinates, a nested clip-region stack, pen/brush state, and a
// DPI scale transform — and dispatches it to pluggable native
// backends (software, X11, GDI, ebiten).
//
// Widgets draw through a *Driver bound to one surface:
//
//	pm := flint.NewPixmap(400, 300)
//	drv := flint.New(flint.NewImageDevice(pm), flint.WithScale(1.5))
//	drv.SetColor(flint.Blue)
//	drv.PushClip(10, 10, 100, 80)
//	drv.Rectf(0, 0, 200, 200) // clipped to (10,10,100,80)
//	drv.PopClip()
//
// The backend registry lives in the backend package; platform
// backends register themselves on import:
//
//	import _ "github.com/flintkit/flint/backend/x11"
package flint
