// Package render drives a compute backend once per frame and hands the
// result to a Surface.
//
// The Pipeline owns the kernel slot and the frame buffer. Draw recomputes
// only when the kernel, viewport or per-frame parameters changed since the
// last frame; otherwise it re-presents the previous frame unchanged. Before
// any kernel exists it presents a flat placeholder.
//
// A Recompiler generates kernels off the frame loop and publishes them into
// the Pipeline. When several requests overlap, only the most recent one is
// published.
package render
