// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"fmt"
	"math/bits"
)

const (
	pcg32Multiplier = 6364136223846793005
	pcg32Increment  = 1442695040888963407
)

// pcg32 為 64-bit 狀態、32-bit 輸出的 PCG 變體。
//
// 注意：xorshift 使用 (old>>5)^old 再右移 27，與常見 XSH RR 的 18 不同；
// 這是既有資料流的一部分，不能「修正」。
type pcg32 struct {
	state uint64
	inc   uint64
}

func newPCG32(seed uint64) *pcg32 {
	return &pcg32{state: seed, inc: pcg32Increment}
}

func (p *pcg32) next() uint32 {
	old := p.state
	p.state = old*pcg32Multiplier + p.inc
	xorshifted := uint32(((old >> 5) ^ old) >> 27)
	rot := uint32(old >> 59)
	return bits.RotateLeft32(xorshifted, -int(rot))
}

func (p *pcg32) engine() Engine { return PCG32 }

func (p *pcg32) dump() string {
	return fmt.Sprintf("State:0x%08X%08X Seq:0x%04X", uint32(p.state>>32), uint32(p.state), uint32(p.inc))
}

func (p *pcg32) clone() source {
	c := *p
	return &c
}
