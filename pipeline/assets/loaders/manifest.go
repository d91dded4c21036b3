package loaders

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spaghettifunk/prism/pipeline/program"
)

// ManifestLoader reads a program manifest: the per-stage source files,
// the user attribute pre-bindings and the transform feedback and
// geometry configuration applied before linking.
type ManifestLoader struct{}

// manifest feedback modes.
var feedbackModes = map[string]program.FeedbackMode{
	"interleaved": program.FeedbackInterleaved,
	"separate":    program.FeedbackSeparate,
}

// manifest primitive names for the geometry configuration.
var primitiveTypes = map[string]program.PrimitiveType{
	"points":              program.PrimitivePoints,
	"lines":               program.PrimitiveLines,
	"lines_adjacency":     program.PrimitiveLinesAdjacency,
	"triangles":           program.PrimitiveTriangles,
	"triangles_adjacency": program.PrimitiveTrianglesAdjacency,
	"triangle_strip":      program.PrimitiveTriangleStrip,
}

type manifestStage struct {
	Stage  string `yaml:"stage"`
	Source string `yaml:"source"`
}

type manifestBinding struct {
	Name string `yaml:"name"`
	Slot int    `yaml:"slot"`
}

type manifestFeedback struct {
	Mode     string   `yaml:"mode"`
	Varyings []string `yaml:"varyings"`
}

type manifestGeometry struct {
	Input       string `yaml:"input"`
	Output      string `yaml:"output"`
	VerticesOut int    `yaml:"vertices_out"`
}

type tmpManifest struct {
	Name     string            `yaml:"name"`
	Stages   []manifestStage   `yaml:"stages"`
	Bindings []manifestBinding `yaml:"bindings"`
	Feedback *manifestFeedback `yaml:"feedback"`
	Geometry *manifestGeometry `yaml:"geometry"`
}

// Manifest describes one shader program before compilation and
// linking.
type Manifest struct {
	Name string
	// Stage source file paths, in attach order.
	Stages []ManifestStage
	// User attribute pre-bindings, name to generic slot.
	Bindings map[string]int
	Feedback program.FeedbackConfig
	Geometry program.GeometryConfig
}

type ManifestStage struct {
	Stage  program.StageKind
	Source string
}

func (config *tmpManifest) TransformToManifest() (*Manifest, error) {
	m := &Manifest{
		Name:     config.Name,
		Bindings: make(map[string]int),
	}

	for _, st := range config.Stages {
		stage, err := program.StageKindFromString(st.Stage)
		if err != nil {
			return nil, err
		}
		m.Stages = append(m.Stages, ManifestStage{Stage: stage, Source: st.Source})
	}

	for _, b := range config.Bindings {
		if _, exists := m.Bindings[b.Name]; exists {
			return nil, fmt.Errorf("duplicate attribute binding found: %s", b.Name)
		}
		m.Bindings[b.Name] = b.Slot
	}

	if config.Feedback != nil {
		mode, ok := feedbackModes[config.Feedback.Mode]
		if !ok {
			return nil, fmt.Errorf("string %s is not a valid feedback mode", config.Feedback.Mode)
		}
		m.Feedback = program.FeedbackConfig{
			Mode:     mode,
			Varyings: config.Feedback.Varyings,
		}
	}

	if config.Geometry != nil {
		input, ok := primitiveTypes[config.Geometry.Input]
		if !ok {
			return nil, fmt.Errorf("string %s is not a valid primitive type", config.Geometry.Input)
		}
		output, ok := primitiveTypes[config.Geometry.Output]
		if !ok {
			return nil, fmt.Errorf("string %s is not a valid primitive type", config.Geometry.Output)
		}
		m.Geometry = program.GeometryConfig{
			InputType:   input,
			OutputType:  output,
			VerticesOut: config.Geometry.VerticesOut,
		}
	}

	return m, nil
}

// Load reads a program manifest from a YAML file.
func (ml *ManifestLoader) Load(path string) (*Manifest, error) {
	tmpManifest := tmpManifest{}
	cfg, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(cfg, &tmpManifest)
	if err != nil {
		return nil, err
	}

	return tmpManifest.TransformToManifest()
}

// Apply copies the manifest's pre-link configuration onto the shader
// program.
func (m *Manifest) Apply(sp *program.ShaderProgram) {
	for name, slot := range m.Bindings {
		sp.BindAttribute(name, slot)
	}
	sp.Feedback = m.Feedback
	sp.Geometry = m.Geometry
}
