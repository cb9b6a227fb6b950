// Package imaging provides the pixel-level groundwork for the detectors:
// image loading and caching, the per-pixel luminance/gradient map, region
// cropping, and rendering of edge maps and rebuilt outline images.
//
// The central type is LuminanceMap: one pass over the source image computes
// grayscale luminance, Sobel gradients, an edge flag, and a coarse compass
// direction per pixel. Everything downstream — line detection, region
// extraction, edge-map rendering — reads that one map; no stage recomputes
// gradients.
//
// All map queries use border replication: out-of-range coordinates clamp to
// the nearest valid pixel, so callers can probe around boundaries without
// bounds checks of their own.
//
// Image decoding goes through disintegration/imaging and registers the BMP,
// PNG, GIF, and JPEG formats. Rendering results are returned as base64 PNG
// for transport through JSON-based protocols.
package imaging
