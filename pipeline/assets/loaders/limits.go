package loaders

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/prism/pipeline/linker"
)

type LimitsLoader struct{}

type tmpLimitsConfig struct {
	Version                 string `toml:"version"`
	MaxVarying              int    `toml:"max_varying"`
	MaxTextureImageUnits    int    `toml:"max_texture_image_units"`
	MaxVertexGenericAttribs int    `toml:"max_vertex_generic_attribs"`
	MaxDrawBuffers          int    `toml:"max_draw_buffers"`
	MaxFeedbackInterleaved  int    `toml:"max_feedback_interleaved_components"`
	MaxFeedbackSeparate     int    `toml:"max_feedback_separate_components"`
	MaxTextureCoordUnits    int    `toml:"max_texture_coord_units"`
	ESProfile               bool   `toml:"es_profile"`
}

func (config *tmpLimitsConfig) TransformToLimits() *linker.Limits {
	limits := linker.DefaultLimits()
	if config.MaxVarying != 0 {
		limits.MaxVarying = config.MaxVarying
	}
	if config.MaxTextureImageUnits != 0 {
		limits.MaxTextureImageUnits = config.MaxTextureImageUnits
	}
	if config.MaxVertexGenericAttribs != 0 {
		limits.MaxVertexGenericAttribs = config.MaxVertexGenericAttribs
	}
	if config.MaxDrawBuffers != 0 {
		limits.MaxDrawBuffers = config.MaxDrawBuffers
	}
	if config.MaxFeedbackInterleaved != 0 {
		limits.MaxFeedbackInterleavedComponents = config.MaxFeedbackInterleaved
	}
	if config.MaxFeedbackSeparate != 0 {
		limits.MaxFeedbackSeparateComponents = config.MaxFeedbackSeparate
	}
	if config.MaxTextureCoordUnits != 0 {
		limits.MaxTextureCoordUnits = config.MaxTextureCoordUnits
	}
	limits.ESProfile = config.ESProfile
	return limits
}

// Load reads context limits from a TOML file. Values left out keep
// their defaults.
func (ll *LimitsLoader) Load(path string) (*linker.Limits, error) {
	tmpLimitsConfig := tmpLimitsConfig{}
	cfg, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = toml.Unmarshal(cfg, &tmpLimitsConfig)
	if err != nil {
		return nil, err
	}

	limits := tmpLimitsConfig.TransformToLimits()
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	return limits, nil
}
