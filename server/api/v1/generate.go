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
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/zintix-labs/randstat/errs"
	"github.com/zintix-labs/randstat/runcfg"
	"github.com/zintix-labs/randstat/sdk/core"
	"github.com/zintix-labs/randstat/sdk/dist"
	"github.com/zintix-labs/randstat/server/httperr"
	"github.com/zintix-labs/randstat/stats"
)

// Generate 依 RunSetting 產生樣本並回傳報表。
//
// GET 以 query 帶參數（engine, dist, seed, warmup, count, a, b, n, bins, strategy, confidence, values）；
// POST 以 JSON body 帶 runcfg.RunSetting。seed 省略時由 server 的 Lab 給定並回傳。
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var rs runcfg.RunSetting
	switch r.Method {
	case http.MethodGet:
		if err := settingFromQuery(r.URL.Query(), &rs); err != nil {
			httperr.ErrsWithReq(w, r, err)
			return
		}
	case http.MethodPost:
		if err := h.decode(w, r, &rs); err != nil {
			httperr.ErrsWithReq(w, r, err)
			return
		}
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if rs.Count == 0 {
		rs.Count = min(runcfg.DefaultCount, h.cfg.MaxCount)
	}
	if rs.Count > h.cfg.MaxCount {
		httperr.ErrsWithReq(w, r, errs.Domainf("count %d exceeds limit %d", rs.Count, h.cfg.MaxCount))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.Timeout)
	defer cancel()
	res, err := h.cfg.Lab.RunContext(ctx, rs)
	if err != nil {
		err = errs.Wrap(err, "generate")
		httperr.Log(h.cfg.Log, "v1.generate", err)
		httperr.ErrsWithReq(w, r, err)
		return
	}
	h.metrics.AddSamples(res.Engine.String(), res.Dist.String(), res.Report.Count)
	httperr.JSON(w, http.StatusOK, res)
}

func settingFromQuery(q url.Values, rs *runcfg.RunSetting) error {
	if s := q.Get("engine"); s != "" {
		e, err := core.ParseEngine(s)
		if err != nil {
			return err
		}
		rs.Engine = e
	}
	if s := q.Get("dist"); s != "" {
		k, err := dist.ParseKind(s)
		if err != nil {
			return err
		}
		rs.Dist = k
	}
	if s := q.Get("strategy"); s != "" {
		st, err := stats.ParseStrategy(s)
		if err != nil {
			return err
		}
		rs.Bins.Strategy = st
	}
	if s := q.Get("seed"); s != "" {
		// 接受 0x 前綴
		u, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return errs.NewWarn("seed must be an unsigned integer")
		}
		rs.Seed = u
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"count", &rs.Count},
		{"bins", &rs.Bins.Count},
	}
	for _, it := range ints {
		if s := q.Get(it.key); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return errs.NewWarn(it.key + " must be integer")
			}
			*it.dst = v
		}
	}
	if s := q.Get("warmup"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return errs.NewWarn("warmup must be integer")
		}
		rs.Warmup = &v
	}
	if a, b, n := q.Get("a"), q.Get("b"), q.Get("n"); a != "" || b != "" || n != "" {
		p := dist.DefaultParams(rs.Dist)
		if a != "" {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return errs.NewWarn("a must be a number")
			}
			p.A = v
		}
		if b != "" {
			v, err := strconv.ParseFloat(b, 64)
			if err != nil {
				return errs.NewWarn("b must be a number")
			}
			p.B = v
		}
		if n != "" {
			v, err := strconv.Atoi(n)
			if err != nil {
				return errs.NewWarn("n must be integer")
			}
			p.N = v
		}
		rs.Params = &p
	}
	if s := q.Get("confidence"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errs.NewWarn("confidence must be a number")
		}
		rs.Confidence = v
	}
	if s := q.Get("values"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return errs.NewWarn("values must be a boolean")
		}
		rs.ReturnValues = v
	}
	return nil
}
