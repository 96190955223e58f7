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
	"bytes"
	"net/http"

	"github.com/zintix-labs/randstat/errs"
	"github.com/zintix-labs/randstat/server/httperr"
	"github.com/zintix-labs/randstat/stats"
)

type describeRequest struct {
	Data        []float64      `json:"data"`
	Percentiles []float64      `json:"percentiles,omitempty"`
	Bins        int            `json:"bins,omitempty"`
	Strategy    stats.Strategy `json:"strategy"`
	Confidence  float64        `json:"confidence,omitempty"`
	Title       string         `json:"title,omitempty"`
}

var contentTypes = map[string]string{
	"json":  "application/json",
	"yaml":  "application/yaml",
	"yml":   "application/yaml",
	"table": "text/plain; charset=utf-8",
}

// Describe 對呼叫端提供的資料計算完整報表。?format=json（預設）| yaml | table。
func (h *Handler) Describe(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	ct, ok := contentTypes[format]
	if !ok {
		httperr.ErrsWithReq(w, r, errs.NewWarn("format must be json, yaml or table"))
		return
	}

	req := new(describeRequest)
	if err := h.decode(w, r, req); err != nil {
		httperr.ErrsWithReq(w, r, err)
		return
	}
	if err := h.checkData(len(req.Data)); err != nil {
		httperr.ErrsWithReq(w, r, err)
		return
	}
	for i, p := range req.Percentiles {
		if !(p >= 0 && p <= 100) {
			httperr.ErrsWithReq(w, r, errs.Domainf("percentiles[%d]=%v out of [0,100]", i, p))
			return
		}
	}
	if req.Confidence != 0 && !(req.Confidence > 0 && req.Confidence < 1) {
		httperr.ErrsWithReq(w, r, errs.Domainf("confidence %v out of (0,1)", req.Confidence))
		return
	}

	rep, err := stats.Describe(req.Data, stats.DescribeOptions{
		Percentiles: req.Percentiles,
		Bins:        min(req.Bins, maxBins),
		Strategy:    req.Strategy,
		Confidence:  req.Confidence,
	})
	if err != nil {
		httperr.ErrsWithReq(w, r, errs.Wrap(err, "describe"))
		return
	}
	if format == "json" {
		httperr.JSON(w, http.StatusOK, rep)
		return
	}

	title := req.Title
	if title == "" {
		title = "Describe"
	}
	render, err := stats.NewRender(format, title)
	if err != nil {
		httperr.ErrsWithReq(w, r, errs.NewWarn(err.Error()))
		return
	}
	var buf bytes.Buffer
	if err := rep.WriteWith(&buf, render); err != nil {
		httperr.ErrsWithReq(w, r, errs.Wrap(err, "render"))
		return
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
