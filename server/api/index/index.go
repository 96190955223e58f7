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
// Package index 提供根路徑的服務說明。
package index

import (
	"net/http"

	"github.com/zintix-labs/randstat/server/httperr"
)

type route struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Desc   string `json:"desc"`
}

var routes = []route{
	{"GET", "/v1/engines", "engines, distributions and binning strategies"},
	{"GET|POST", "/v1/generate", "generate samples and describe them"},
	{"POST", "/v1/describe", "describe caller data (?format=json|yaml|table)"},
	{"POST", "/v1/percentiles", "batch percentiles"},
	{"POST", "/v1/bins", "bin edges and counts"},
	{"GET", "/metrics", "prometheus metrics"},
	{"GET", "/dev", "engine panel"},
}

// IndexHandlerFn 回傳服務名稱與路由列表。
func IndexHandlerFn(w http.ResponseWriter, r *http.Request) {
	httperr.JSON(w, http.StatusOK, map[string]any{
		"service": "randstat",
		"routes":  routes,
	})
}
