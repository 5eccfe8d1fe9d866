package sources

import (
	"context"
	"strings"

	"github.com/hyperjump/ideaworks/internal/config"
	"github.com/hyperjump/ideaworks/internal/fetch"
	"github.com/hyperjump/ideaworks/internal/models"
	"github.com/hyperjump/ideaworks/internal/ranking"
	"github.com/hyperjump/ideaworks/internal/terms"
	"github.com/hyperjump/ideaworks/pkg/utils"
)

const (
	kaggleSearchTerms      = 4
	kaggleMaxRows          = 40
	kaggleEvidenceDatasets = 5
	kaggleSiteURL          = "https://www.kaggle.com"
)

// Kaggle groups matching datasets by owner and surfaces the owners. It needs API
// credentials; the registry leaves it out when they are missing.
type Kaggle struct {
	getter   fetch.Getter
	baseURL  string
	username string
	key      string
}

// NewKaggle creates the dataset-hub adapter.
func NewKaggle(getter fetch.Getter, cfg config.KaggleConfig) *Kaggle {
	return &Kaggle{
		getter:   getter,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		username: cfg.Username,
		key:      cfg.Key,
	}
}

// Name implements Source.
func (k *Kaggle) Name() models.SourceKind {
	return models.SourceDatasetHub
}

type kaggleDataset struct {
	Ref         string `json:"ref"`
	OwnerRef    string `json:"ownerRef"`
	OwnerUser   string `json:"ownerUser"`
	Title       string `json:"title"`
	DatasetSlug string `json:"datasetSlug"`
}

func (d kaggleDataset) owner() string {
	return utils.FirstNonEmpty(d.OwnerRef, d.OwnerUser)
}

func (d kaggleDataset) slug() string {
	if d.DatasetSlug != "" {
		return d.DatasetSlug
	}
	_, slug, _ := strings.Cut(d.Ref, "/")
	return slug
}

type kaggleOwner struct {
	count    int
	datasets []models.DatasetRef
}

// Search implements Source.
func (k *Kaggle) Search(ctx context.Context, req SearchRequest) ([]*models.Candidate, error) {
	raw, err := k.getter.GetJSON(ctx, k.baseURL+"/datasets/list",
		fetch.WithQuery("search", strings.Join(terms.Head(req.Terms, kaggleSearchTerms), " ")),
		fetch.WithQuery("page", "1"),
		fetch.WithBasicAuth(k.username, k.key),
	)
	if err != nil {
		return nil, err
	}
	var rows []kaggleDataset
	if err := decode(k.Name(), raw, &rows); err != nil {
		return nil, err
	}
	if n := req.pageSize(2, kaggleMaxRows); len(rows) > n {
		rows = rows[:n]
	}

	var owners []string
	byOwner := make(map[string]*kaggleOwner)
	for _, d := range rows {
		owner := d.owner()
		if owner == "" {
			continue
		}
		o, ok := byOwner[owner]
		if !ok {
			o = &kaggleOwner{}
			byOwner[owner] = o
			owners = append(owners, owner)
		}
		o.count++
		o.datasets = append(o.datasets, models.DatasetRef{
			Title: d.Title,
			URL:   kaggleSiteURL + "/" + owner + "/" + d.slug(),
		})
	}

	cfg := req.scoring()
	out := make([]*models.Candidate, 0, len(owners))
	for _, owner := range owners {
		out = append(out, k.candidate(owner, byOwner[owner], req.Terms, cfg))
	}
	return out, nil
}

func (k *Kaggle) candidate(owner string, o *kaggleOwner, searchTerms []string, cfg *ranking.ScoringConfig) *models.Candidate {
	titles := make([]string, 0, len(o.datasets))
	for _, d := range o.datasets {
		if d.Title != "" {
			titles = append(titles, d.Title)
		}
	}
	evidence := o.datasets
	if len(evidence) > kaggleEvidenceDatasets {
		evidence = evidence[:kaggleEvidenceDatasets]
	}
	score := ranking.ScoreText(strings.Join(titles, " "), searchTerms, cfg) +
		ranking.ItemBonus(o.count, cfg.DatasetBonus, cfg)

	return &models.Candidate{
		Source:     k.Name(),
		Name:       utils.StringPtr(owner),
		Username:   utils.StringPtr(owner),
		ProfileURL: utils.StringPtr(kaggleSiteURL + "/" + owner),
		Evidence:   models.DatasetHubEvidence{Datasets: evidence},
		Score:      score,
	}
}
