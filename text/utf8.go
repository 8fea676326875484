package text

// Leading byte patterns. Each entry matches b&mask == value and declares how
// many bytes (leader included) the sequence occupies.
var leaders = []struct {
	mask, value byte
	length      int
}{
	{0x80, 0x00, 1}, // 0xxxxxxx
	{0xe0, 0xc0, 2}, // 110xxxxx
	{0xf0, 0xe0, 3}, // 1110xxxx
	{0xf8, 0xf0, 4}, // 11110xxx
}

// CharLength returns the number of UTF-8 encoded characters in b. The second
// return value is false if b is not valid UTF-8, in which case the count is
// meaningless.
//
// Validation is a bit-pattern check: every leading byte must be a 1 to 4 byte
// leader and must be followed by the declared number of 10xxxxxx continuation
// bytes. The legacy 5 and 6 byte leaders are rejected.
func CharLength(b []byte) (int, bool) {
	count := 0
	for i := 0; i < len(b); {
		length := 0
		for _, l := range leaders {
			if b[i]&l.mask == l.value {
				length = l.length
				break
			}
		}
		if length == 0 || i+length > len(b) {
			return 0, false
		}
		for _, c := range b[i+1 : i+length] {
			if c&0xc0 != 0x80 {
				return 0, false
			}
		}
		i += length
		count++
	}
	return count, true
}

// IsUTF8 reports whether b is valid UTF-8 (see CharLength).
func IsUTF8(b []byte) bool {
	_, ok := CharLength(b)
	return ok
}
