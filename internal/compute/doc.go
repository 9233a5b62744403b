// Package compute provides the per-pixel evaluation backends.
//
//   - CPU: kernel bytecode over row bands, one goroutine per band
//   - OpenGL (package glcompute): the kernel's generated GLSL compute
//     shader, read back into the frame pixmap
//
// GPU backends register themselves with Register and need a current
// graphics context, which only the GUI creates. Everything else uses the
// CPU backend:
//
//	backend, err := compute.ByName("cpu", false)
//	err = backend.Render(ctx, k, viewport, params, frame)
package compute
