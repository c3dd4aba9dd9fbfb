package importer

import (
	"fmt"
	"testing"

	"tradeportal/internal/models"

	"github.com/stretchr/testify/assert"
)

func draft(name, phone string) *models.TraderDraft {
	return &models.TraderDraft{Name: name, Phone: phone}
}

func TestResolveBatch_DistinctPhonesAllAccepted(t *testing.T) {
	var drafts []*models.TraderDraft
	for i := 0; i < 5; i++ {
		drafts = append(drafts, draft(fmt.Sprintf("T%d", i), fmt.Sprintf("0208765432%d", i)))
	}
	accepted, skipped := ResolveBatch(map[string]bool{}, drafts)
	assert.Len(t, accepted, 5)
	assert.Zero(t, skipped)
}

func TestResolveBatch_DuplicateWithinBatch(t *testing.T) {
	accepted, skipped := ResolveBatch(map[string]bool{}, []*models.TraderDraft{
		draft("first", "02011112222"),
		draft("second", "02011112222"),
	})
	assert.Len(t, accepted, 1)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, "first", accepted[0].Name) // file order, first row wins
}

func TestResolveBatch_DuplicateAgainstStore(t *testing.T) {
	existing := map[string]bool{"02011112222": true}
	accepted, skipped := ResolveBatch(existing, []*models.TraderDraft{
		draft("collides", "02011112222"),
		draft("fresh", "02033334444"),
	})
	assert.Len(t, accepted, 1)
	assert.Equal(t, "fresh", accepted[0].Name)
	assert.Equal(t, 1, skipped)
}

func TestResolveBatch_PhonelessNeverDeduped(t *testing.T) {
	accepted, skipped := ResolveBatch(map[string]bool{}, []*models.TraderDraft{
		draft("a", ""),
		draft("b", ""),
		draft("c", ""),
	})
	assert.Len(t, accepted, 3)
	assert.Zero(t, skipped)
}
