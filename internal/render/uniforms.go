package render

import "encoding/binary"

// DimensionsBinding is the uniform block binding point of the Dimensions block.
const DimensionsBinding = 0

// DimensionsBlockName is the GLSL name of the viewport block.
const DimensionsBlockName = "Dimensions"

// DimensionsSize is the std140 size of the block: one ivec4.
const DimensionsSize = 16

// Dimensions is the viewport block {width, height, 0, 0}.
type Dimensions [4]int32

func NewDimensions(width, height int) Dimensions {
	return Dimensions{int32(width), int32(height), 0, 0}
}

// Std140 packs the block as the GPU reads it.
func (d Dimensions) Std140() [DimensionsSize]byte {
	var out [DimensionsSize]byte
	for i, v := range d {
		binary.LittleEndian.PutUint32(out[i*4:], uint32(v))
	}
	return out
}
