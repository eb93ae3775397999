// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command vgdemo renders scene documents to PNG files.
//
// Usage:
//
//	vgdemo [-out dir] [-scale s] [-jobs n] [-v] scene.yaml scene.toml ...
//
// Each scene is written to <out>/<name>.png, where name is the scene file
// name without its extension.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/vgcore"
	"github.com/gogpu/vgcore/render"
	"github.com/gogpu/vgcore/scene"
)

func main() {
	var (
		out     = flag.String("out", ".", "output directory")
		scale   = flag.Float64("scale", 1, "pixels per scene unit")
		jobs    = flag.Int("jobs", runtime.NumCPU(), "scenes rendered in parallel")
		verbose = flag.Bool("v", false, "log skipped draws")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: vgdemo [flags] scene...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	vgcore.SetLogger(logger)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(flag.Args(), *out, *scale, *jobs, logger); err != nil {
		logger.Error("vgdemo failed", "err", err)
		os.Exit(1)
	}
}

// run renders every scene, at most jobs at a time. It returns the first
// error; scenes already started still finish.
func run(paths []string, outDir string, scale float64, jobs int, logger *slog.Logger) error {
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return fmt.Errorf("invalid scale %g", scale)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	var g errgroup.Group
	g.SetLimit(max(jobs, 1))
	for _, path := range paths {
		g.Go(func() error {
			return renderFile(path, outDir, scale, logger.With("scene", path))
		})
	}
	return g.Wait()
}

func renderFile(path, outDir string, scale float64, logger *slog.Logger) error {
	doc, err := scene.Load(path)
	if err != nil {
		return err
	}
	w := int(math.Ceil(float64(doc.Width) * scale))
	h := int(math.Ceil(float64(doc.Height) * scale))

	target := render.NewSoftwareTarget(w, h)
	ctx := render.NewContext(target,
		render.WithContentScale(vgcore.Sz(float64(doc.Width), float64(doc.Height))),
		render.WithLogger(logger),
	)
	if err := doc.Render(ctx); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	img, err := target.Image()
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".png"
	outPath := filepath.Join(outDir, name)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", outPath, err)
	}
	logger.Info("rendered", "out", outPath, "width", w, "height", h)
	return nil
}
