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

package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/zintix-labs/randstat"
	"github.com/zintix-labs/randstat/server"
	"github.com/zintix-labs/randstat/server/svrcfg"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	h, err := server.Handler(&svrcfg.SvrCfg{
		MaxCount: 20000,
		Lab:      randstat.New(randstat.WithBaseSeed(7)),
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	return h
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

type errBody struct {
	Error     string `json:"error"`
	Kind      string `json:"kind"`
	RequestID string `json:"request_id"`
}

func TestIndexAndEngines(t *testing.T) {
	h := newHandler(t)
	rec := do(t, h, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/v1/generate") {
		t.Fatalf("index: %d %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("request id header missing")
	}

	rec = do(t, h, http.MethodGet, "/v1/engines", "")
	var cat struct {
		Engines []struct {
			Key string `json:"key"`
		} `json:"engines"`
		Dists    []struct{ Key string } `json:"dists"`
		MaxCount int                    `json:"max_count"`
	}
	decode(t, rec, &cat)
	if len(cat.Engines) != 5 || cat.Engines[3].Key != "pcg32" || len(cat.Dists) != 5 || cat.MaxCount != 20000 {
		t.Fatalf("catalog = %+v", cat)
	}
}

type genResult struct {
	Seed   uint64    `json:"seed"`
	Engine string    `json:"engine"`
	Dist   string    `json:"dist"`
	Warmup int       `json:"warmup"`
	Values []float64 `json:"values"`
	Report struct {
		Count int     `json:"count"`
		Mean  float64 `json:"mean"`
	} `json:"report"`
	Fit *struct {
		PValue float64 `json:"p_value"`
	} `json:"fit"`
}

func TestGenerateQuery(t *testing.T) {
	h := newHandler(t)
	rec := do(t, h, http.MethodGet, "/v1/generate?engine=pcg&dist=gauss&seed=0x4d&count=1000&warmup=0", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var a genResult
	decode(t, rec, &a)
	if a.Seed != 77 || a.Engine != "pcg32" || a.Dist != "normal" || a.Warmup != 0 || a.Report.Count != 1000 {
		t.Fatalf("result = %+v", a)
	}
	if a.Values != nil {
		t.Fatalf("values returned without values=true")
	}

	// 同參數必須得到相同結果
	var b genResult
	decode(t, do(t, h, http.MethodGet, "/v1/generate?engine=pcg32&dist=normal&seed=77&count=1000&warmup=0", ""), &b)
	if a.Report.Mean != b.Report.Mean {
		t.Fatalf("not reproducible: %v vs %v", a.Report.Mean, b.Report.Mean)
	}
}

func TestGeneratePost(t *testing.T) {
	h := newHandler(t)
	body := `{"engine":"mwc","dist":"uniform","seed":1,"count":500,"return_values":true}`
	rec := do(t, h, http.MethodPost, "/v1/generate", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var res genResult
	decode(t, rec, &res)
	if len(res.Values) != 500 || res.Fit == nil {
		t.Fatalf("values=%d fit=%v", len(res.Values), res.Fit)
	}
	for _, v := range res.Values {
		if v < 0 || v >= 1 {
			t.Fatalf("uniform value out of [0,1): %v", v)
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	h := newHandler(t)
	cases := []struct {
		method, target, body string
		kind                 string
	}{
		{http.MethodGet, "/v1/generate?count=30000", "", "domain"},
		{http.MethodGet, "/v1/generate?engine=nope", "", "domain"},
		{http.MethodGet, "/v1/generate?dist=exponential&a=-1", "", "domain"},
		{http.MethodGet, "/v1/generate?seed=abc", "", ""},
		{http.MethodPost, "/v1/generate", `{"engine":"mwc","bogus":1}`, ""},
		{http.MethodPost, "/v1/generate", `{"count":1}`, "domain"},
	}
	for i, c := range cases {
		rec := do(t, h, c.method, c.target, c.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("case %d: status %d: %s", i, rec.Code, rec.Body.String())
		}
		var eb errBody
		decode(t, rec, &eb)
		if eb.Kind != c.kind || eb.RequestID == "" {
			t.Fatalf("case %d: body %+v", i, eb)
		}
	}
}

func oneTo(n int) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 1; i <= n; i++ {
		if i > 1 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(i))
	}
	sb.WriteByte(']')
	return sb.String()
}

func TestDescribeFormats(t *testing.T) {
	h := newHandler(t)
	body := `{"data":` + oneTo(100) + `,"title":"ints"}`

	rec := do(t, h, http.MethodPost, "/v1/describe", body)
	var rep struct {
		Count int     `json:"count"`
		Mean  float64 `json:"mean"`
	}
	decode(t, rec, &rep)
	if rep.Count != 100 || rep.Mean != 50.5 {
		t.Fatalf("report = %+v", rep)
	}

	rec = do(t, h, http.MethodPost, "/v1/describe?format=yaml", body)
	if rec.Header().Get("Content-Type") != "application/yaml" || !strings.Contains(rec.Body.String(), "count: 100") {
		t.Fatalf("yaml: %s", rec.Body.String())
	}

	rec = do(t, h, http.MethodPost, "/v1/describe?format=table", body)
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain") || !strings.Contains(rec.Body.String(), "ints") {
		t.Fatalf("table: %s", rec.Body.String())
	}

	rec = do(t, h, http.MethodPost, "/v1/describe?format=xml", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown format: %d", rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/v1/describe", `{"data":[]}`)
	var eb errBody
	decode(t, rec, &eb)
	if rec.Code != http.StatusBadRequest || eb.Kind != "empty" {
		t.Fatalf("empty data: %d %+v", rec.Code, eb)
	}
}

func TestPercentiles(t *testing.T) {
	h := newHandler(t)
	rec := do(t, h, http.MethodPost, "/v1/percentiles", `{"data":[5,1,4,2,3],"p":[50,101,0]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Results []*float64 `json:"results"`
		Error   string     `json:"error"`
	}
	decode(t, rec, &resp)
	if len(resp.Results) != 3 || resp.Results[1] != nil || *resp.Results[0] != 3 || *resp.Results[2] != 1 {
		t.Fatalf("results = %+v", resp)
	}
	if !strings.Contains(resp.Error, "p[1]") {
		t.Fatalf("error = %q", resp.Error)
	}

	rec = do(t, h, http.MethodPost, "/v1/percentiles", `{"data":[],"p":[50]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty data: %d", rec.Code)
	}
}

func TestBins(t *testing.T) {
	h := newHandler(t)
	var sb strings.Builder
	sb.WriteString(`{"count":4,"min":0,"max":100,"data":[`)
	for i := 0; i < 100; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(i))
	}
	sb.WriteString("]}")
	rec := do(t, h, http.MethodPost, "/v1/bins", sb.String())
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var br struct {
		Schema struct {
			Edges []float64 `json:"edges"`
		} `json:"schema"`
		Counts []int `json:"counts"`
	}
	decode(t, rec, &br)
	want := []int{25, 25, 25, 25}
	for i := range want {
		if br.Counts[i] != want[i] {
			t.Fatalf("counts = %v", br.Counts)
		}
	}
	if len(br.Schema.Edges) != 5 || br.Schema.Edges[2] != 50 {
		t.Fatalf("edges = %v", br.Schema.Edges)
	}

	bad := []string{
		`{"count":4,"min":0,"max":100,"strategy":"percentile","data":[1,2]}`,
		`{"count":4,"min":-5,"max":100,"strategy":"log","data":[1,2]}`,
		`{"count":4,"min":10,"max":1,"data":[1,2]}`,
		`{"count":4,"min":0,"data":[1,2]}`,
		`{"count":0,"data":[3,3,3]}`,
		`{"count":5000,"data":[1,2]}`,
	}
	for i, b := range bad {
		if rec := do(t, h, http.MethodPost, "/v1/bins", b); rec.Code != http.StatusBadRequest {
			t.Fatalf("bad %d: %d %s", i, rec.Code, rec.Body.String())
		}
	}
}

func TestMetricsExposition(t *testing.T) {
	h := newHandler(t)
	do(t, h, http.MethodGet, "/v1/generate?seed=3&count=100", "")
	rec := do(t, h, http.MethodGet, "/metrics", "")
	out := rec.Body.String()
	for _, want := range []string{
		`randstat_http_requests_total{method="GET",route="/v1/generate",status="200"} 1`,
		`randstat_samples_total{dist="uniform",engine="mwc"} 100`,
		"randstat_http_request_duration_seconds_bucket",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("metrics missing %q", want)
		}
	}
}

func TestCompression(t *testing.T) {
	h := newHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/engines", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("encoding = %q", rec.Header().Get("Content-Encoding"))
	}
	gr, err := gzip.NewReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("gzip: %v", err)
	}
	plain, _ := io.ReadAll(gr)
	if !bytes.Contains(plain, []byte(`"pcg32"`)) {
		t.Fatalf("gzip body: %s", plain)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/engines", nil)
	req.Header.Set("Accept-Encoding", "zstd, gzip")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Content-Encoding") != "zstd" {
		t.Fatalf("encoding = %q", rec.Header().Get("Content-Encoding"))
	}
	zr, err := zstd.NewReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("zstd: %v", err)
	}
	defer zr.Close()
	plain, _ = io.ReadAll(zr)
	if !bytes.Contains(plain, []byte(`"splitmix64"`)) {
		t.Fatalf("zstd body: %s", plain)
	}
}

func TestDevStream(t *testing.T) {
	h := newHandler(t)
	rec := do(t, h, http.MethodPost, "/dev/stream", `{"engine":"pcg32","seed":"0xDEADBEEF","warmup":0,"n":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var s struct {
		Values      []uint32 `json:"values"`
		StateBefore string   `json:"state_before"`
		StateAfter  string   `json:"state_after"`
	}
	decode(t, rec, &s)
	if len(s.Values) != 2 || s.Values[0] != 27 || s.Values[1] != 1824507900 {
		t.Fatalf("values = %v", s.Values)
	}
	if s.StateBefore == s.StateAfter || !strings.Contains(s.StateBefore, "PCG32") {
		t.Fatalf("states %q -> %q", s.StateBefore, s.StateAfter)
	}

	for _, b := range []string{
		`{"engine":"pcg32","seed":"0","n":2}`,
		`{"engine":"nope","n":2}`,
		`{"engine":"mwc","n":5000}`,
	} {
		if rec := do(t, h, http.MethodPost, "/dev/stream", b); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: %d", b, rec.Code)
		}
	}
	if rec := do(t, h, http.MethodGet, "/dev", ""); !strings.Contains(rec.Body.String(), "<html") {
		t.Fatalf("dev page missing")
	}
}
