package assets

import (
	"embed"
	"fmt"
	"os"
)

//go:embed shaders/*.vert shaders/*.frag
var shaderFS embed.FS

// Built-in shader names.
const (
	BackdropVertex   = "backdrop.vert"
	BackdropFragment = "backdrop.frag"
)

// Shader returns a built-in GLSL source.
func Shader(name string) (string, error) {
	b, err := shaderFS.ReadFile("shaders/" + name)
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	return string(b), nil
}

// MustShader is Shader for names known at compile time.
func MustShader(name string) string {
	src, err := Shader(name)
	if err != nil {
		panic(err)
	}
	return src
}

// LoadShader reads a GLSL file from disk.
func LoadShader(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", path, err)
	}
	return string(b), nil
}
