// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package workspace

import (
	"regexp"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	slugAlphabet   = "0123456789abcdefghijklmnopqrstuvwxyz"
	slugSuffixSize = 4
)

var whitespace = regexp.MustCompile(`\s+`)

// Slugify lowercases name, replaces whitespace runs with "-" and appends suffix.
func Slugify(name, suffix string) string {
	return whitespace.ReplaceAllString(strings.ToLower(name), "-") + "-" + suffix
}

func randomSuffix() (string, error) {
	return gonanoid.Generate(slugAlphabet, slugSuffixSize)
}
