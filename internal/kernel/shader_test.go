package kernel

import (
	"strings"
	"testing"
)

func TestGLSL(t *testing.T) {
	src := gen(t, "sin(z)^2 + c*(1+2i)", 10).GLSL()

	for _, want := range []string{
		"#version 430",
		"const int NITER = 10;",
		"const double R2 = 4.0lf;",
		"c_powi(c_sin(z), 2)",
		"dvec2(0.0lf, 2.0lf)",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("GLSL missing %q", want)
		}
	}
	if strings.Contains(src, "{{") {
		t.Error("GLSL has unfilled placeholders")
	}
}

func TestWGSL(t *testing.T) {
	src := gen(t, "z^c - 0.5", 12).WGSL()

	for _, want := range []string{
		"fn cs_main",
		"c_pow(z, c)",
		"vec2<f32>(0.5, 0.0)",
		"k <= 12;",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("WGSL missing %q", want)
		}
	}
	if strings.Contains(src, "{{") {
		t.Error("WGSL has unfilled placeholders")
	}
}

func TestLiteralFormatting(t *testing.T) {
	tests := []struct {
		v          float64
		glsl, wgsl string
	}{
		{2, "2.0lf", "2.0"},
		{0.25, "0.25lf", "0.25"},
		{-1.5, "(-1.5lf)", "(-1.5)"},
		{1e-12, "1e-12lf", "1e-12"},
	}
	for _, tt := range tests {
		if got := glslDouble(tt.v); got != tt.glsl {
			t.Errorf("glslDouble(%v) = %q, want %q", tt.v, got, tt.glsl)
		}
		if got := wgslFloat(tt.v); got != tt.wgsl {
			t.Errorf("wgslFloat(%v) = %q, want %q", tt.v, got, tt.wgsl)
		}
	}
}

func TestSPIRV(t *testing.T) {
	words, err := gen(t, "z^2+c", 32).SPIRVWords()
	if err != nil {
		t.Fatalf("SPIRV: %v", err)
	}
	if len(words) == 0 || words[0] != 0x07230203 {
		t.Fatalf("missing SPIR-V magic number")
	}
}
