package importer

import "tradeportal/internal/models"

// ResolveBatch decides skip-vs-insert for each draft, in input order, giving
// a deterministic first-row-wins rule for phone collisions within a batch.
// A draft with a non-empty normalized phone that matches either the stored
// set or a phone already accepted earlier in this batch is skipped. Drafts
// without a phone are always accepted and never deduplicated against each
// other.
//
// The check is evaluated at submission time only; two imports of overlapping
// phones racing concurrently can both insert. That window is accepted, there
// is no cross-request coordination.
func ResolveBatch(existingPhones map[string]bool, drafts []*models.TraderDraft) (accepted []*models.TraderDraft, skipped int) {
	seen := make(map[string]bool, len(drafts))
	for _, d := range drafts {
		if d.Phone != "" {
			if existingPhones[d.Phone] || seen[d.Phone] {
				skipped++
				continue
			}
			seen[d.Phone] = true
		}
		accepted = append(accepted, d)
	}
	return accepted, skipped
}
