package content

import (
	"sort"
	"strings"
	"unicode"

	gopinyin "github.com/mozillazg/go-pinyin"
)

// collationKey romanizes Han characters so mixed Chinese and English
// labels sort together alphabetically.
func collationKey(label string, args gopinyin.Args) string {
	var b strings.Builder
	for _, r := range label {
		if unicode.Is(unicode.Han, r) {
			if readings := gopinyin.Pinyin(string(r), args); len(readings) > 0 && len(readings[0]) > 0 {
				b.WriteString(readings[0][0])
				continue
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// SortLabels returns a copy of labels ordered by their pinyin reading.
// Labels with the same reading keep their relative order.
func SortLabels(labels []string) []string {
	args := gopinyin.NewArgs()

	keys := make(map[string]string, len(labels))
	for _, l := range labels {
		keys[l] = collationKey(l, args)
	}

	sorted := append([]string(nil), labels...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return keys[sorted[i]] < keys[sorted[j]]
	})
	return sorted
}
