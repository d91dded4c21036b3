package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/prism/pipeline/core"
	"github.com/spaghettifunk/prism/pipeline/program"
)

/**
 * @brief Per-stage metadata the backend derives from a linked stage
 * program, ready to feed pipeline creation.
 */
type StageInfo struct {
	/** @brief The Vulkan stage bit for the pipeline stage create info. */
	Stage vk.ShaderStageFlagBits
	/** @brief View type each used sampler unit's descriptor must have. */
	SamplerViewTypes map[int]vk.ImageViewType
	/** @brief Number of temporary registers the stage requires. */
	NumTemporaries int
}

/**
 * @brief Driver backend targeting Vulkan. It accepts linked stage
 * programs, derives their pipeline stage metadata and rejects programs
 * exceeding the device's sampler budget.
 */
type Backend struct {
	/** @brief Per-stage sampled image budget of the device. */
	MaxPerStageSamplers int

	stages map[program.StageKind]*StageInfo
}

func NewBackend(maxPerStageSamplers int) *Backend {
	return &Backend{
		MaxPerStageSamplers: maxPerStageSamplers,
		stages:              make(map[program.StageKind]*StageInfo),
	}
}

var stageFlagBits = map[program.StageKind]vk.ShaderStageFlagBits{
	program.StageVertex:   vk.ShaderStageVertexBit,
	program.StageGeometry: vk.ShaderStageGeometryBit,
	program.StageFragment: vk.ShaderStageFragmentBit,
}

var targetViewTypes = map[program.TextureTarget]vk.ImageViewType{
	program.Target1D:      vk.ImageViewType1d,
	program.Target2D:      vk.ImageViewType2d,
	program.Target3D:      vk.ImageViewType3d,
	program.TargetCube:    vk.ImageViewTypeCube,
	program.TargetRect:    vk.ImageViewType2d,
	program.Target1DArray: vk.ImageViewType1dArray,
	program.Target2DArray: vk.ImageViewType2dArray,
}

// ProgramStringNotify derives the Vulkan stage metadata for the linked
// stage. Returning false rejects the stage and fails the link.
func (b *Backend) ProgramStringNotify(stage program.StageKind, prog *program.StageProgram) bool {
	flag, ok := stageFlagBits[stage]
	if !ok {
		core.LogError("vulkan backend: unknown stage %s", stage)
		return false
	}

	info := &StageInfo{
		Stage:            flag,
		SamplerViewTypes: make(map[int]vk.ImageViewType),
		NumTemporaries:   prog.NumTemporaries,
	}

	samplers := 0
	for unit := 0; unit < program.MaxSamplerUnits; unit++ {
		if prog.SamplersUsed&(1<<uint(unit)) == 0 {
			continue
		}
		samplers++
		viewType, ok := targetViewTypes[prog.SamplerTargets[unit]]
		if !ok {
			core.LogError("vulkan backend: unsupported texture target %s on unit %d",
				prog.SamplerTargets[unit], unit)
			return false
		}
		info.SamplerViewTypes[unit] = viewType
	}
	if b.MaxPerStageSamplers > 0 && samplers > b.MaxPerStageSamplers {
		core.LogError("vulkan backend: %s program uses %d samplers, device limit is %d",
			stage, samplers, b.MaxPerStageSamplers)
		return false
	}

	b.stages[stage] = info
	return true
}

// StageInfoFor returns the metadata derived for the stage by the last
// accepted notify, or nil.
func (b *Backend) StageInfoFor(stage program.StageKind) *StageInfo {
	return b.stages[stage]
}
