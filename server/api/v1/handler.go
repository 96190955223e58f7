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
// Package v1 提供 /v1 底下的 JSON API：產生樣本、描述統計、百分位、分桶與引擎列表。
package v1

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/zintix-labs/randstat/errs"
	"github.com/zintix-labs/randstat/server/netsvr"
	"github.com/zintix-labs/randstat/server/netsvr/middleware"
	"github.com/zintix-labs/randstat/server/svrcfg"
)

// 請求 body 上限；以 MaxCount 個浮點數的 JSON 文字估算後再留餘裕。
const bytesPerValue = 32

// Handler 持有 v1 API 的依賴。
type Handler struct {
	cfg     *svrcfg.SvrCfg
	metrics *middleware.Metrics
}

// NewHandler 建立 Handler；sCfg 需已通過 Valid。metrics 可為 nil。
func NewHandler(sCfg *svrcfg.SvrCfg, metrics *middleware.Metrics) (*Handler, error) {
	if sCfg == nil || sCfg.Lab == nil {
		return nil, errs.NewFatal("v1: server config is not validated")
	}
	return &Handler{cfg: sCfg, metrics: metrics}, nil
}

// Register 把所有 v1 路由掛到 r 底下。
func (h *Handler) Register(r netsvr.NetRouter) {
	r.Get("/engines", h.Engines)
	r.Get("/generate", h.Generate)
	r.Post("/generate", h.Generate)
	r.Post("/describe", h.Describe)
	r.Post("/percentiles", h.Percentiles)
	r.Post("/bins", h.Bins)
}

// decode 讀取 JSON body；未知欄位與超過大小上限皆為請求錯誤。
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) error {
	limit := int64(h.cfg.MaxCount)*bytesPerValue + 1<<16
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errs.NewWarn("empty request body")
		}
		return errs.NewWarn("invalid json: " + err.Error())
	}
	return nil
}

// checkData 檢查輸入資料的長度上限。
func (h *Handler) checkData(n int) error {
	if n > h.cfg.MaxCount {
		return errs.Domainf("data length %d exceeds limit %d", n, h.cfg.MaxCount)
	}
	return nil
}
