// Package render groups the output formats for computed layouts.
//
// The renderers live in the [sink] subpackage:
//
//	svg := sink.RenderSVG(layout, sink.WithLabels())
//	png, err := sink.RenderPNG(ctx, layout, sink.WithScale(2))
//	txt := sink.RenderText(layout, 80)
//
// [sink.Render] dispatches on a format name and is what the pipeline uses.
package render
