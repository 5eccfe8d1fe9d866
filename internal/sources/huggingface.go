package sources

import (
	"context"
	"strconv"
	"strings"

	"github.com/hyperjump/ideaworks/internal/config"
	"github.com/hyperjump/ideaworks/internal/fetch"
	"github.com/hyperjump/ideaworks/internal/models"
	"github.com/hyperjump/ideaworks/internal/ranking"
	"github.com/hyperjump/ideaworks/internal/terms"
	"github.com/hyperjump/ideaworks/pkg/utils"
)

const (
	hfSearchTerms   = 4
	hfMaxModels     = 40
	hfTopModelCount = 5
	hfSiteURL       = "https://huggingface.co"
)

// HuggingFace groups matching models by author and surfaces the authors.
type HuggingFace struct {
	getter  fetch.Getter
	baseURL string
	token   string
}

// NewHuggingFace creates the model-hub adapter.
func NewHuggingFace(getter fetch.Getter, cfg config.HuggingFaceConfig) *HuggingFace {
	return &HuggingFace{
		getter:  getter,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
	}
}

// Name implements Source.
func (h *HuggingFace) Name() models.SourceKind {
	return models.SourceModelHub
}

type hfModel struct {
	ID        string `json:"id"`
	ModelID   string `json:"modelId"`
	Author    string `json:"author"`
	Likes     int    `json:"likes"`
	Downloads int    `json:"downloads"`
}

func (m hfModel) id() string {
	return utils.FirstNonEmpty(m.ModelID, m.ID)
}

func (m hfModel) author() string {
	if m.Author != "" {
		return m.Author
	}
	owner, _, _ := strings.Cut(m.id(), "/")
	return owner
}

// Search implements Source.
func (h *HuggingFace) Search(ctx context.Context, req SearchRequest) ([]*models.Candidate, error) {
	raw, err := h.getter.GetJSON(ctx, h.baseURL+"/api/models",
		fetch.WithQuery("search", strings.Join(terms.Head(req.Terms, hfSearchTerms), " ")),
		fetch.WithBearerToken(h.token),
	)
	if err != nil {
		return nil, err
	}
	var listing []hfModel
	if err := decode(h.Name(), raw, &listing); err != nil {
		return nil, err
	}
	if len(listing) > hfMaxModels {
		listing = listing[:hfMaxModels]
	}

	var authors []string
	byAuthor := make(map[string][]hfModel)
	for _, m := range listing {
		author := m.author()
		if author == "" {
			continue
		}
		if _, ok := byAuthor[author]; !ok {
			authors = append(authors, author)
		}
		byAuthor[author] = append(byAuthor[author], m)
	}

	cfg := req.scoring()
	out := make([]*models.Candidate, 0, len(authors))
	for _, author := range authors {
		out = append(out, h.candidate(author, byAuthor[author], req.Terms, cfg))
	}
	return out, nil
}

func (h *HuggingFace) candidate(author string, authored []hfModel, searchTerms []string, cfg *ranking.ScoringConfig) *models.Candidate {
	top := authored
	if len(top) > hfTopModelCount {
		top = top[:hfTopModelCount]
	}
	evidence := models.ModelHubEvidence{TopModels: make([]models.ModelEvidence, len(top))}
	blob := make([]string, 0, 3*len(top))
	for i, m := range top {
		id := m.id()
		evidence.TopModels[i] = models.ModelEvidence{
			Model:     id,
			Likes:     m.Likes,
			Downloads: m.Downloads,
			URL:       hfSiteURL + "/" + id,
		}
		blob = append(blob, id, strconv.Itoa(m.Likes), strconv.Itoa(m.Downloads))
	}
	score := ranking.ScoreText(strings.Join(blob, " "), searchTerms, cfg) +
		ranking.ItemBonus(len(authored), cfg.ModelBonus, cfg)

	return &models.Candidate{
		Source:     h.Name(),
		Name:       utils.StringPtr(author),
		Username:   utils.StringPtr(author),
		ProfileURL: utils.StringPtr(hfSiteURL + "/" + author),
		Evidence:   evidence,
		Score:      score,
	}
}
