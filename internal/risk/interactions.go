package risk

// interactionPairs lists the known risky medication pairs. The lookup table
// is the symmetric closure built once at package init, so b ∈ map[a] always
// implies a ∈ map[b].
var interactionPairs = [][2]string{
	{"ibuprofen", "aspirin"},
	{"ibuprofen", "warfarin"},
	{"ibuprofen", "naproxen"},
	{"aspirin", "warfarin"},
}

var interactionMap = buildInteractionMap()

func buildInteractionMap() map[string]map[string]bool {
	m := make(map[string]map[string]bool)
	add := func(a, b string) {
		if m[a] == nil {
			m[a] = make(map[string]bool)
		}
		m[a][b] = true
	}
	for _, pair := range interactionPairs {
		add(pair[0], pair[1])
		add(pair[1], pair[0])
	}
	return m
}
