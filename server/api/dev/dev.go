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
// Package dev 提供開發期使用的引擎觀察面板。
//
// 面板可指定引擎、種子與 warm-up，逐步抽出原始 32-bit 輸出並比對前後狀態，
// 方便核對各引擎的參考序列。這不是 production API。
package dev

import (
	_ "embed"
	"net/http"
	"strconv"
	"strings"

	"github.com/zintix-labs/randstat/errs"
	"github.com/zintix-labs/randstat/sdk/core"
	v1 "github.com/zintix-labs/randstat/server/api/v1"
	"github.com/zintix-labs/randstat/server/httperr"
	"github.com/zintix-labs/randstat/server/netsvr"
	"github.com/zintix-labs/randstat/server/svrcfg"
)

const maxStream = 1000

//go:embed page.html
var pageHTML []byte

// streamRequest 為 /dev/stream 的輸入。Seed 為十進位或 0x 十六進位字串，空字串時自動產生。
type streamRequest struct {
	Engine string `json:"engine"`
	Seed   string `json:"seed"`
	Warmup *int   `json:"warmup,omitempty"`
	N      int    `json:"n"`
}

type streamResponse struct {
	Engine      string    `json:"engine"`
	Seed        string    `json:"seed"`
	Warmup      int       `json:"warmup"`
	SeedValid   bool      `json:"seed_valid"`
	StateBefore string    `json:"state_before"`
	Values      []uint32  `json:"values"`
	Floats      []float64 `json:"floats"`
	StateAfter  string    `json:"state_after"`
}

func Register(svr netsvr.NetRouter, cfg *svrcfg.SvrCfg) {
	svr.Get("/dev", devPage)
	svr.Get("/dev/meta", devMeta(cfg))
	svr.Post("/dev/stream", devStream)
}

func devPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(pageHTML)
}

func devMeta(cfg *svrcfg.SvrCfg) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httperr.JSON(w, http.StatusOK, v1.Catalog(cfg.MaxCount))
	}
}

func devStream(w http.ResponseWriter, r *http.Request) {
	req := new(streamRequest)
	if err := decodeJSON(w, r, req); err != nil {
		httperr.ErrsWithReq(w, r, err)
		return
	}
	engine, err := core.ParseEngine(req.Engine)
	if err != nil {
		httperr.ErrsWithReq(w, r, err)
		return
	}
	seed, err := resolveSeed(req.Seed)
	if err != nil {
		httperr.ErrsWithReq(w, r, err)
		return
	}
	if req.N <= 0 {
		req.N = 10
	}
	if req.N > maxStream {
		httperr.ErrsWithReq(w, r, errs.Domainf("n %d exceeds %d", req.N, maxStream))
		return
	}
	warmup := 0
	if req.Warmup != nil {
		warmup = *req.Warmup
	}

	rng := core.Init(engine, seed, warmup)
	resp := streamResponse{
		Engine:      engine.String(),
		Seed:        "0x" + strconv.FormatUint(seed, 16),
		Warmup:      rng.Warmup(),
		SeedValid:   core.IsValidSeed(seed, engine),
		StateBefore: rng.String(),
		Values:      make([]uint32, req.N),
		Floats:      make([]float64, req.N),
	}
	// Floats 以同一狀態的副本產生，不影響 Values
	fl := rng.Clone()
	for i := range resp.Values {
		resp.Values[i] = rng.NextU32()
		resp.Floats[i] = fl.NextFloat()
	}
	resp.StateAfter = rng.String()
	httperr.JSON(w, http.StatusOK, resp)
}

// resolveSeed 解析種子字串；空字串時以時間產生，0 為非法種子。
func resolveSeed(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.TimeSeed(), nil
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, errs.NewWarn("seed must be an unsigned integer (decimal or 0x hex)")
	}
	if v == 0 {
		return 0, errs.Domainf("seed must be non-zero")
	}
	return v, nil
}
