package dedup

import "intern-watch/internal/model"

// FilterNew walks records in arrival order and returns the ones whose
// fingerprints are not yet in state, adding each as it is emitted. Sources
// are processed in a fixed priority order upstream, so a posting seen by two
// sources is credited to whichever came first. Once recorded, a fingerprint
// is never emitted again, across restarts included.
func FilterNew(records []model.PostingRecord, state *State) []model.PostingRecord {
	var fresh []model.PostingRecord
	for _, r := range records {
		fp := Fingerprint(r)
		if state.Has(fp) {
			continue
		}
		state.Add(fp)
		fresh = append(fresh, r)
	}
	return fresh
}
