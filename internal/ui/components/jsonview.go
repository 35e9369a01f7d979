// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
)

// =============================================================================
// JSON VIEW
// =============================================================================

// PrettyJSON re-indents raw JSON with two spaces. Invalid JSON is returned as is.
func PrettyJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(raw), "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// MarshalPretty encodes v as indented JSON.
func MarshalPretty(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// HighlightJSON colors JSON text for a 256-color terminal. The input is
// returned unchanged when highlighting fails.
func HighlightJSON(src string) string {
	return highlight(src, "json", "monokai")
}

func highlight(src, language, styleName string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(styleName)
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return src
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return src
	}
	return buf.String()
}

// JSONView renders a JSON document, optionally highlighted.
type JSONView struct {
	Highlight bool
}

// Render pretty-prints raw and applies highlighting when enabled.
func (v JSONView) Render(raw []byte) string {
	pretty := PrettyJSON(raw)
	if !v.Highlight {
		return pretty
	}
	return HighlightJSON(pretty)
}

// RenderValue marshals value and renders it.
func (v JSONView) RenderValue(value any) string {
	s, err := MarshalPretty(value)
	if err != nil {
		return err.Error()
	}
	if !v.Highlight {
		return s
	}
	return HighlightJSON(s)
}
