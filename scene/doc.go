// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scene describes drawings as YAML or TOML documents and replays
// them on a render.Context.
//
// A document names a canvas size, an optional background color and a list
// of items. Each item is a path, given in text form or as a shape, that is
// filled or stroked with a shading:
//
//	width: 200
//	height: 120
//	background: "#ffffff"
//	items:
//	  - shape: {kind: roundedRect, rect: [10, 10, 180, 100], radius: 12}
//	    fill: {}
//	    shading:
//	      kind: linear
//	      start: [10, 10]
//	      end: [190, 110]
//	      stops:
//	        - {color: "#ff0000", offset: 0}
//	        - {color: "#0000ff", offset: 1}
//
// Decoding rejects unknown fields. Drawing is fail soft: an item that draws
// nothing is logged at debug level and skipped.
package scene
