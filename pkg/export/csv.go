// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package export

import (
	"strings"
)

// Encode renders a CSV document. The header line is left unquoted, every data
// cell is quoted with embedded quotes doubled, lines are separated by "\n".
func Encode(headers []string, rows [][]string) string {
	var b strings.Builder

	b.WriteString(strings.Join(headers, ","))

	for _, row := range rows {
		b.WriteByte('\n')
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(cell))
		}
	}

	return b.String()
}

func quote(cell string) string {
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}
