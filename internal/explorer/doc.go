// Package explorer ties the formula compiler, viewport, pointer handling
// and render pipeline into the object a host window drives.
//
// A host constructs an Explorer around a render.Surface, forwards window
// events to it and calls Draw once per refresh:
//
//	x := explorer.New(surface)
//	if err := x.SetFunction("z^2 + c"); err != nil {
//		// show err; the previous formula keeps rendering
//	}
//	x.OnPointerDown(mx, my)
//	x.Draw(ctx)
//
// Only formula errors are returned. Bad resolutions, iteration bounds and
// zoom factors are corrected or ignored and logged through dynamo.Logger.
package explorer
