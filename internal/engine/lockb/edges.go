package lockb

// buildRequests collects, for every package after the root, the dependency
// records whose resolution slot points at it. The scan walks the
// resolution ids and the dependency records with two cursors advanced in
// lockstep: a match at k takes the record k places past the dependency
// cursor, then both cursors move just past the match.
func buildRequests(ids resolutionIDs, deps, strs []byte, listLen int) [][]Dependency {
	out := make([][]Dependency, listLen)
	if listLen == 0 {
		return out
	}
	out[0] = []Dependency{}

	for i := 1; i < listLen; i++ {
		var found []Dependency
		resPos, depPos := 0, 0
		for {
			at := ids.indexFrom(resPos, uint32(i))
			if at < 0 {
				break
			}
			k := at - resPos
			start := depPos + k*DependencySize
			end := start + DependencySize
			if end > len(deps) {
				break
			}
			found = append(found, Dependency{rec: deps[start:end:end], strings: strs})
			depPos = end
			resPos = at + 1
		}
		out[i] = found
	}
	return out
}
