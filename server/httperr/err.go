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

package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/zintix-labs/randstat/errs"
)

// StatusCode 將錯誤映射成 HTTP status code。
//
// 規則（邊界層最小映射、可預期）：
//   - ctx timeout/cancel → 504/408（請求生命週期問題）
//   - errs.Warn         → 400（請求/參數/資料問題，包含所有資料錯誤哨兵）
//   - errs.Fatal        → 500（系統/不可恢復問題）
//
// 注意：本函數屬於 HTTP 邊界層，因此放在 server/*（而不是 core errs）。
func StatusCode(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout // 504
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout // 408
	}

	var e *errs.E
	if errors.As(err, &e) && e.ErrLv == errs.Warn {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Body 是錯誤回應的 JSON 形狀。
type Body struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// kind 回傳資料錯誤的種類，讓呼叫端不用解析訊息字串。
func kind(err error) string {
	switch {
	case errors.Is(err, errs.ErrEmpty):
		return "empty"
	case errors.Is(err, errs.ErrDomain):
		return "domain"
	case errors.Is(err, errs.ErrNaN):
		return "nan"
	case errors.Is(err, errs.ErrDivZero):
		return "div_zero"
	}
	return ""
}

// Errs 依錯誤分級寫回 JSON 錯誤。
func Errs(w http.ResponseWriter, err error) {
	ErrsWithReq(w, nil, err)
}

// ErrsWithReq 與 Errs 相同，另外帶上 request id。
func ErrsWithReq(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	b := Body{Error: err.Error(), Kind: kind(err)}
	if r != nil {
		b.RequestID = chimid.GetReqID(r.Context())
	}
	JSON(w, StatusCode(err), b)
}

// JSON 寫出 status 與 JSON 內容。
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Log 只記錄值得關注的錯誤：408/409/429 記 Warn，5xx 記 Error；一般 4xx 交給 access log。
func Log(log *slog.Logger, msg string, err error) {
	if err == nil || log == nil {
		return
	}
	status := StatusCode(err)
	if (status == 408) || (status == 409) || (status == 429) {
		log.Warn(msg, slog.Any("err", err))
	} else if (status >= 500) && (status < 600) {
		log.Error(msg, slog.Any("err", err))
	}
}
