package linker

import (
	"fmt"

	"github.com/spaghettifunk/prism/pipeline/program"
)

/**
 * @brief Context limits the linker enforces. These mirror the
 * enclosing graphics context's implementation constants and are
 * read-mostly configuration shared between link attempts.
 */
type Limits struct {
	/** @brief Maximum number of 4-float varying slots between stages. */
	MaxVarying int
	/** @brief Maximum program-wide texture sampler units. */
	MaxTextureImageUnits int
	/** @brief Maximum generic vertex attribute slots. */
	MaxVertexGenericAttribs int
	/** @brief Maximum indexed fragment data outputs. */
	MaxDrawBuffers int
	/** @brief Maximum captured float components, interleaved feedback. */
	MaxFeedbackInterleavedComponents int
	/** @brief Maximum captured float components, separate feedback,
	  summed over all captured varyings. */
	MaxFeedbackSeparateComponents int
	/** @brief Number of texture coordinate units. */
	MaxTextureCoordUnits int
	/** @brief True for a strict ES profile, which requires both a vertex
	  and a fragment stage in every program. */
	ESProfile bool
}

// DefaultLimits returns the limits of a typical desktop context.
func DefaultLimits() *Limits {
	return &Limits{
		MaxVarying:                       16,
		MaxTextureImageUnits:             16,
		MaxVertexGenericAttribs:          16,
		MaxDrawBuffers:                   8,
		MaxFeedbackInterleavedComponents: 64,
		MaxFeedbackSeparateComponents:    4,
		MaxTextureCoordUnits:             8,
	}
}

// Validate checks the limits against the register model's hard bounds.
func (l *Limits) Validate() error {
	// The fragment input window is the tightest of the three stages.
	if l.MaxVarying <= 0 || l.MaxVarying > program.MaxFragmentInputs-program.FragAttribVar0 {
		return fmt.Errorf("MaxVarying %d out of range", l.MaxVarying)
	}
	if l.MaxTextureImageUnits <= 0 || l.MaxTextureImageUnits > program.MaxSamplerUnits {
		return fmt.Errorf("MaxTextureImageUnits %d out of range", l.MaxTextureImageUnits)
	}
	if l.MaxVertexGenericAttribs <= 0 || l.MaxVertexGenericAttribs > program.MaxVertexInputs-program.VertAttribGeneric0 {
		return fmt.Errorf("MaxVertexGenericAttribs %d out of range", l.MaxVertexGenericAttribs)
	}
	if l.MaxDrawBuffers <= 0 || l.MaxDrawBuffers > program.MaxFragmentOutputs-program.FragResultData0 {
		return fmt.Errorf("MaxDrawBuffers %d out of range", l.MaxDrawBuffers)
	}
	if l.MaxTextureCoordUnits <= 0 || l.MaxTextureCoordUnits > program.MaxTextureCoordSlots {
		return fmt.Errorf("MaxTextureCoordUnits %d out of range", l.MaxTextureCoordUnits)
	}
	return nil
}
