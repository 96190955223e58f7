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

package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// Table 以兩欄表格輸出報表（千分位分隔）。
func (r *Report) Table(title string) string {
	if title == "" {
		title = "Describe"
	}
	keys, msg := r.fmtBasic()
	out := fmtTable(title, keys, msg)
	if r.Bins != nil {
		bk, bm := r.fmtBins()
		out += fmtTable("Bins ("+r.Bins.Schema.Strategy.String()+")", bk, bm)
	}
	return out
}

func (r *Report) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	pct := fmt.Sprintf("%g%%", r.Confidence*100)
	msg := map[string]string{
		"Count":           p.Sprintf("%d", r.Count),
		"Mean":            p.Sprintf("%.6g", r.Mean),
		"Mean " + pct:     p.Sprintf("[%.6g, %.6g]", r.MeanCI.CI.Lo, r.MeanCI.CI.Hi),
		"Std Dev":         p.Sprintf("%.6g", r.StdDev),
		"Variance":        p.Sprintf("%.6g", r.Variance),
		"MAD":             p.Sprintf("%.6g", r.MAD),
		"Mean Abs Dev":    p.Sprintf("%.6g", r.MeanAbsDev),
		"Min":             p.Sprintf("%.6g", r.Summary.Min),
		"Q1":              p.Sprintf("%.6g", r.Summary.Q1),
		"Median":          p.Sprintf("%.6g", r.Summary.Median),
		"Median " + pct:   p.Sprintf("[%.6g, %.6g]", r.MedianCI.CI.Lo, r.MedianCI.CI.Hi),
		"Q3":              p.Sprintf("%.6g", r.Summary.Q3),
		"Max":             p.Sprintf("%.6g", r.Summary.Max),
		"IQR":             p.Sprintf("%.6g", r.Summary.IQR),
		"Fences":          p.Sprintf("[%.6g, %.6g]", r.Summary.LowerFence, r.Summary.UpperFence),
		"Outliers":        p.Sprintf("%d (%.2f%%)", r.Outliers.Count, 100*r.Outliers.Rate),
	}
	keys := []string{"Count", "Mean", "Mean " + pct, "Std Dev", "Variance", "MAD", "Mean Abs Dev"}
	if r.Qn != nil {
		msg["Qn"] = p.Sprintf("%.6g", *r.Qn)
		keys = append(keys, "Qn")
	}
	keys = append(keys, "Min", "Q1", "Median", "Median "+pct, "Q3", "Max", "IQR", "Fences", "Outliers")
	for _, pp := range r.Percentiles {
		k := fmt.Sprintf("P%g", pp.P)
		if _, dup := msg[k]; dup {
			continue
		}
		msg[k] = p.Sprintf("%.6g", pp.Value)
		keys = append(keys, k)
	}
	return keys, msg
}

func (r *Report) fmtBins() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	s := r.Bins.Schema
	keys := make([]string, 0, s.Count)
	msg := make(map[string]string, s.Count)
	for i, c := range r.Bins.Counts {
		k := s.Label(i)
		if _, dup := msg[k]; dup {
			k = fmt.Sprintf("#%d %s", i, k)
		}
		keys = append(keys, k)
		msg[k] = p.Sprintf("%d", c)
	}
	return keys, msg
}

// FormatDuration 回傳用時與每秒樣本數，例如 "used: 1.20 seconds\nsps : 83,333 samples/sec\n"。
func FormatDuration(d time.Duration, samples int) string {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	sps := int(float64(samples) / sec)
	if sec < 60.0 {
		return p.Sprintf("used: %.2f seconds\nsps : %d samples/sec\n", sec, sps)
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		return p.Sprintf("used: %dm %ds\nsps : %d samples/sec\n", m, s, sps)
	}
	return p.Sprintf("used: %dh:%dm:%ds\nsps : %d samples/sec\n", h, m, s, sps)
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var sb strings.Builder
	sb.WriteString(top)
	sb.WriteString("|" + blank(left) + title + blank(right) + "|\n")
	sb.WriteString(divider)
	for _, k := range keys {
		sb.WriteString("| " + k + blank(maxKeyLen-2-runewidth.StringWidth(k)) +
			" | " + msg[k] + blank(maxValLen-2-runewidth.StringWidth(msg[k])) + " |\n")
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
