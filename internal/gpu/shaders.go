// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"embed"
	"errors"
	"fmt"

	"github.com/gogpu/naga"

	"github.com/gogpu/vgcore/internal/shading"
)

//go:embed shaders/*.wgsl
var shaderFS embed.FS

// ErrShaderValidation is returned when an embedded WGSL program fails
// naga validation.
var ErrShaderValidation = errors.New("gpu: shader validation failed")

// shaderFiles maps each shader kind to its embedded source file.
var shaderFiles = [shading.ShaderKindCount]string{
	shading.StencilOnly:            "stencil_only.wgsl",
	shading.VertexColor:            "vertex_color.wgsl",
	shading.Image:                  "image.wgsl",
	shading.RedChannelToAlphaImage: "red_to_alpha.wgsl",
	shading.MaskResolve:            "mask_resolve.wgsl",
	shading.ColorMatrixImage:       "color_matrix.wgsl",
	shading.BlurImage:              "blur.wgsl",
}

// Shader entry points shared by every program.
const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// shaderSource returns the WGSL source of a shader kind.
func shaderSource(kind shading.ShaderKind) (string, error) {
	if kind >= shading.ShaderKindCount {
		return "", fmt.Errorf("gpu: unknown shader kind %d", kind)
	}
	data, err := shaderFS.ReadFile("shaders/" + shaderFiles[kind])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", shaderFiles[kind], err)
	}
	return string(data), nil
}

// validateShader parses, lowers and validates WGSL with naga.
func validateShader(name, source string) error {
	ast, err := naga.Parse(source)
	if err != nil {
		return fmt.Errorf("%w: %s: parse: %w", ErrShaderValidation, name, err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return fmt.Errorf("%w: %s: lower: %w", ErrShaderValidation, name, err)
	}
	issues, err := naga.Validate(module)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrShaderValidation, name, err)
	}
	if len(issues) > 0 {
		return fmt.Errorf("%w: %s: %s", ErrShaderValidation, name, issues[0].Message)
	}
	return nil
}
