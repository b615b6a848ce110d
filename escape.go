package rainbowcat

import (
	"unicode/utf8"
)

const (
	esc = 0x1b

	// maxEscapeLen caps how many characters after ESC are passed through
	// while looking for the letter that ends the sequence.
	maxEscapeLen = 200
)

// ResetSequence restores the default attributes, foreground and background.
const ResetSequence = "\x1b[0m\x1b[39m\x1b[49m"

// escapeEnd returns the offset just past the escape sequence that starts
// with the ESC at line[start]. The sequence ends after the first ASCII
// letter, or after maxEscapeLen characters if no letter shows up. Only the
// boundary matters here, not what the sequence means.
func escapeEnd(line []byte, start int) int {
	i := start + 1
	for n := 0; n < maxEscapeLen && i < len(line); n++ {
		c := line[i]
		if c < utf8.RuneSelf {
			i++
			if isASCIILetter(c) {
				break
			}
			continue
		}
		_, size := utf8.DecodeRune(line[i:])
		i += size
	}
	return i
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
