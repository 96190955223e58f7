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

package runcfg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/zintix-labs/randstat/errs"
	"gopkg.in/yaml.v3"
)

// PlanByYAML 會讀取 YAML 計畫、正規化後回傳。未知欄位視為錯誤。
func PlanByYAML(data []byte) (*Plan, error) {
	p := &Plan{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // 嚴格檢查：多寫/拼錯欄位就報錯
	if err := dec.Decode(p); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshal yaml plan")
	}
	if err := p.Normalize(); err != nil {
		return nil, err
	}
	return p, nil
}

// PlanByJSON 會讀取 JSON 計畫、正規化後回傳。未知欄位視為錯誤。
func PlanByJSON(data []byte) (*Plan, error) {
	p := &Plan{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshal json plan")
	}
	if err := p.Normalize(); err != nil {
		return nil, err
	}
	return p, nil
}

// PlanByExt 依副檔名選擇解析器（.yaml / .yml / .json）。
func PlanByExt(filename string, raw []byte) (*Plan, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return PlanByYAML(raw)
	case ".json":
		return PlanByJSON(raw)
	default:
		return nil, errs.NewFatal(fmt.Sprintf("unsupported plan format: %q", filename))
	}
}

// Load 從 fs.FS 讀取並解析計畫。
func Load(fsys fs.FS, name string) (*Plan, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errs.Wrap(err, "read plan error")
	}
	return PlanByExt(name, raw)
}

// LoadFile 從本機路徑讀取並解析計畫。
func LoadFile(path string) (*Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(err, "read plan error")
	}
	return PlanByExt(path, raw)
}
