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
package v1

import (
	"net/http"

	"github.com/zintix-labs/randstat/sdk/core"
	"github.com/zintix-labs/randstat/sdk/dist"
	"github.com/zintix-labs/randstat/server/httperr"
	"github.com/zintix-labs/randstat/stats"
)

type distInfo struct {
	Key      string      `json:"key"`
	Discrete bool        `json:"discrete"`
	Defaults dist.Params `json:"defaults"`
}

type catalog struct {
	Engines    []core.EngineInfo `json:"engines"`
	Dists      []distInfo        `json:"dists"`
	Strategies []string          `json:"strategies"`
	MaxCount   int               `json:"max_count"`
	WarmupMax  int               `json:"warmup_max"`
}

// Catalog 列出可用的引擎、分布與分桶策略；dev 面板也使用這份資料。
func Catalog(maxCount int) any {
	c := catalog{MaxCount: maxCount, WarmupMax: core.WarmupMax}
	for _, e := range core.Engines() {
		c.Engines = append(c.Engines, e.Info())
	}
	for _, k := range dist.Kinds() {
		c.Dists = append(c.Dists, distInfo{Key: k.String(), Discrete: k.Discrete(), Defaults: dist.DefaultParams(k)})
	}
	for _, s := range stats.Strategies() {
		c.Strategies = append(c.Strategies, s.String())
	}
	return c
}

func (h *Handler) Engines(w http.ResponseWriter, r *http.Request) {
	httperr.JSON(w, http.StatusOK, Catalog(h.cfg.MaxCount))
}
