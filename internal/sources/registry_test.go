package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hyperjump/ideaworks/internal/config"
	"github.com/hyperjump/ideaworks/internal/models"
)

func kinds(srcs []Source) []models.SourceKind {
	out := make([]models.SourceKind, len(srcs))
	for i, s := range srcs {
		out[i] = s.Name()
	}
	return out
}

func TestRegistry(t *testing.T) {
	cfg := config.Default()
	pool := newTestPool(t)

	got := Registry(&cfg.Sources, newTestGetter(), pool, nil)
	assert.Equal(t, []models.SourceKind{
		models.SourceCodeHosting,
		models.SourceQASite,
		models.SourceModelHub,
		models.SourcePaperIndex,
	}, kinds(got), "dataset hub needs credentials")

	cfg.Sources.Kaggle.Username = "u"
	cfg.Sources.Kaggle.Key = "k"
	off := false
	cfg.Sources.StackExchange.Enabled = &off
	got = Registry(&cfg.Sources, newTestGetter(), pool, nil)
	assert.Equal(t, []models.SourceKind{
		models.SourceCodeHosting,
		models.SourceModelHub,
		models.SourcePaperIndex,
		models.SourceDatasetHub,
	}, kinds(got))
}
