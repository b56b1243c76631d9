package segaslides

type region int

const (
	regionJapan region = 1 << iota
	regionAmericas
	regionEurope
)

var regionCodes = map[byte]region{
	'J': regionJapan,
	'U': regionAmericas,
	'E': regionEurope,
}

// parseRegions validates a ROM header region string such as "JUE". Order
// does not matter; duplicates and unknown codes are rejected.
func parseRegions(s string) (region, error) {
	if s == "" {
		return 0, configErrorf("region string is empty")
	}
	var r region
	for i := 0; i < len(s); i++ {
		code, ok := regionCodes[s[i]]
		if !ok {
			return 0, configErrorf("unknown region code %q, expected J, U, or E", s[i])
		}
		if r&code != 0 {
			return 0, configErrorf("duplicate region code %q", s[i])
		}
		r |= code
	}
	return r, nil
}
