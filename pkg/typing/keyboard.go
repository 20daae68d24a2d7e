package typing

import (
	"math/rand"
	"strings"
	"unicode"
)

// QWERTY layout rows used to derive key adjacency for synthetic typos.
var qwertyRows = []string{
	"1234567890",
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
}

// neighbors maps each lowercase key to the keys physically adjacent to it:
// same-row left/right plus the nearest keys on the rows above and below.
var neighbors = buildNeighbors()

func buildNeighbors() map[rune][]rune {
	m := make(map[rune][]rune)
	add := func(key, adj rune) {
		for _, existing := range m[key] {
			if existing == adj {
				return
			}
		}
		m[key] = append(m[key], adj)
	}
	for rowIdx, row := range qwertyRows {
		for i, key := range row {
			if i > 0 {
				add(key, rune(row[i-1]))
			}
			if i < len(row)-1 {
				add(key, rune(row[i+1]))
			}
			for _, otherIdx := range []int{rowIdx - 1, rowIdx + 1} {
				if otherIdx < 0 || otherIdx >= len(qwertyRows) {
					continue
				}
				other := qwertyRows[otherIdx]
				for _, di := range []int{0, -1, 1} {
					j := i + di
					if j >= 0 && j < len(other) {
						add(key, rune(other[j]))
					}
				}
			}
		}
	}
	return m
}

// adjacentKey returns a key physically adjacent to r on a QWERTY layout,
// preserving case. Characters without neighbors return unchanged, which makes
// a typo for them a plain double-type of the correct character.
func adjacentKey(r rune, rng *rand.Rand) rune {
	lower := unicode.ToLower(r)
	adj, ok := neighbors[lower]
	if !ok || len(adj) == 0 {
		return r
	}
	pick := adj[rng.Intn(len(adj))]
	if unicode.IsUpper(r) {
		return unicode.ToUpper(pick)
	}
	return pick
}

// isSentencePunctuation reports whether typing r warrants the post-sentence
// pause.
func isSentencePunctuation(r rune) bool {
	return strings.ContainsRune(".!?", r)
}
