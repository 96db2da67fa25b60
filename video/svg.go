package video

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
)

// ResizeSVG rescales a traced frame of srcW x srcH pixels to dstW x dstH
// without touching its paths: the width and height attributes are rewritten
// and a viewBox covering the source size is added to the root element.
//
// Only attributes equal to the source size are rewritten, so the function is
// meant for documents produced by tracing a srcW x srcH raster.
func ResizeSVG(svg []byte, srcW, srcH, dstW, dstH int) []byte {
	out := bytes.ReplaceAll(svg, attr("width", srcW), attr("width", dstW))
	out = bytes.ReplaceAll(out, attr("height", srcH), attr("height", dstH))
	if bytes.Contains(out, []byte("viewBox=")) {
		return out
	}
	viewBox := fmt.Appendf(nil, `<svg viewBox="0 0 %d %d"`, srcW, srcH)
	return bytes.Replace(out, []byte("<svg"), viewBox, 1)
}

// ResizeSVGFile applies ResizeSVG to the file at path in place.
func ResizeSVGFile(path string, srcW, srcH, dstW, dstH int) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is built from the configured directory
	if err != nil {
		return fmt.Errorf("video: resize svg: %w", err)
	}
	if err := os.WriteFile(path, ResizeSVG(data, srcW, srcH, dstW, dstH), 0o644); err != nil { //nolint:gosec // frames are meant to be shared
		return fmt.Errorf("video: resize svg: %w", err)
	}
	return nil
}

func attr(name string, v int) []byte {
	return []byte(name + `="` + strconv.Itoa(v) + `"`)
}
