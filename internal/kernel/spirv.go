package kernel

import (
	"fmt"

	"github.com/gogpu/naga"
)

// SPIRV compiles the WGSL form of the kernel to a SPIR-V binary.
func (k *Kernel) SPIRV() ([]byte, error) {
	spirv, err := naga.Compile(k.WGSL())
	if err != nil {
		return nil, fmt.Errorf("kernel: failed to compile wgsl: %w", err)
	}
	return spirv, nil
}

// SPIRVWords returns the SPIR-V binary as little-endian 32-bit words, the
// form accepted by shader module creation.
func (k *Kernel) SPIRVWords() ([]uint32, error) {
	spirv, err := k.SPIRV()
	if err != nil {
		return nil, err
	}
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = uint32(spirv[i*4]) |
			uint32(spirv[i*4+1])<<8 |
			uint32(spirv[i*4+2])<<16 |
			uint32(spirv[i*4+3])<<24
	}
	return words, nil
}
