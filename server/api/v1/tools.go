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
	"errors"
	"math"
	"net/http"

	"github.com/zintix-labs/randstat/errs"
	"github.com/zintix-labs/randstat/server/httperr"
	"github.com/zintix-labs/randstat/stats"
)

const maxBins = 1000

type percentilesRequest struct {
	Data []float64 `json:"data"`
	P    []float64 `json:"p"`
}

// NaN 在 JSON 中以 null 表示
type percentilesResponse struct {
	Results []*float64 `json:"results"`
	Error   string     `json:"error,omitempty"`
}

// Percentiles 計算多個百分位。
//
// 資料為空或含 NaN 時整體失敗（400）；個別 p 超出 [0,100] 時該項為 null，
// 其餘照常回傳，並在 error 欄位說明。
func (h *Handler) Percentiles(w http.ResponseWriter, r *http.Request) {
	req := new(percentilesRequest)
	if err := h.decode(w, r, req); err != nil {
		httperr.ErrsWithReq(w, r, err)
		return
	}
	if err := h.checkData(len(req.Data)); err != nil {
		httperr.ErrsWithReq(w, r, err)
		return
	}
	if len(req.P) == 0 {
		req.P = stats.DefaultPercentiles
	}

	vals, err := stats.Percentiles(req.Data, req.P)
	if err != nil && (errors.Is(err, errs.ErrEmpty) || errors.Is(err, errs.ErrNaN)) {
		httperr.ErrsWithReq(w, r, err)
		return
	}
	resp := percentilesResponse{Results: make([]*float64, len(vals))}
	for i, v := range vals {
		if !math.IsNaN(v) {
			resp.Results[i] = &vals[i]
		}
	}
	if err != nil {
		resp.Error = err.Error()
	}
	httperr.JSON(w, http.StatusOK, resp)
}

type binsRequest struct {
	Data     []float64      `json:"data"`
	Count    int            `json:"count"`
	Strategy stats.Strategy `json:"strategy"`
	Min      *float64       `json:"min,omitempty"`
	Max      *float64       `json:"max,omitempty"`
}

// Bins 建立分桶邊界並統計每桶個數。
//
// 同時給定 min/max 時使用固定範圍（不支援 percentile 策略）；否則以資料自動決定範圍。
func (h *Handler) Bins(w http.ResponseWriter, r *http.Request) {
	req := new(binsRequest)
	if err := h.decode(w, r, req); err != nil {
		httperr.ErrsWithReq(w, r, err)
		return
	}
	if err := h.checkData(len(req.Data)); err != nil {
		httperr.ErrsWithReq(w, r, err)
		return
	}
	if req.Count == 0 {
		req.Count = stats.DefaultBins
	}
	if req.Count < 1 || req.Count > maxBins {
		httperr.ErrsWithReq(w, r, errs.Domainf("count %d out of [1,%d]", req.Count, maxBins))
		return
	}

	schema, err := h.schemaFor(req)
	if err != nil {
		httperr.ErrsWithReq(w, r, err)
		return
	}
	counts, err := stats.Counts(req.Data, schema, stats.DefaultEpsilon)
	if err != nil {
		httperr.ErrsWithReq(w, r, errs.Wrap(err, "bins"))
		return
	}
	httperr.JSON(w, http.StatusOK, stats.BinReport{Schema: schema, Counts: counts})
}

// schemaFor 先驗證再建構；BuildEdges 對非法輸入會 panic。
func (h *Handler) schemaFor(req *binsRequest) (stats.Schema, error) {
	edges := make([]float64, req.Count+1)
	switch {
	case req.Min == nil && req.Max == nil:
		s, err := stats.AutoEdges(edges, req.Data, req.Strategy)
		if err != nil {
			return stats.Schema{}, errs.Wrap(err, "bins")
		}
		return s, nil
	case req.Min == nil || req.Max == nil:
		return stats.Schema{}, errs.Domainf("bins: min and max must be given together")
	}

	lo, hi := *req.Min, *req.Max
	switch {
	case !finite(lo) || !finite(hi) || lo >= hi:
		return stats.Schema{}, errs.Domainf("bins: invalid range [%v, %v]", lo, hi)
	case req.Strategy == stats.PercentileBins:
		return stats.Schema{}, errs.Domainf("bins: percentile strategy derives its range from data")
	case req.Strategy == stats.Logarithmic && lo <= -1:
		return stats.Schema{}, errs.Domainf("bins: logarithmic needs min > -1, got %v", lo)
	case req.Strategy != stats.Linear && req.Strategy != stats.Logarithmic:
		return stats.Schema{}, errs.Domainf("bins: unknown strategy %d", uint8(req.Strategy))
	}
	return stats.BuildEdges(edges, lo, hi, req.Strategy), nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
