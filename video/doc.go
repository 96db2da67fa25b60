// Package video turns an animation into files: numbered raster frames,
// optional vector traces of each frame, and a video container assembled by
// an external encoder.
//
// The frame files are named frame_0000.png, frame_0001.png, ... so that
// encoders can consume them through a single printf-style pattern. Tracing
// and encoding run external programs (vtracer and ffmpeg by default) through
// a Runner, which tests replace.
package video
