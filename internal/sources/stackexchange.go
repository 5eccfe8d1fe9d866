package sources

import (
	"context"
	"html"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/ideaworks/internal/config"
	"github.com/hyperjump/ideaworks/internal/fetch"
	"github.com/hyperjump/ideaworks/internal/models"
	"github.com/hyperjump/ideaworks/internal/ranking"
	"github.com/hyperjump/ideaworks/pkg/utils"
)

const (
	stackDefaultTerm = "engineer"
	stackTopTagCount = 5
)

// StackExchange finds users of one StackExchange site by display name, ordered by
// reputation.
type StackExchange struct {
	getter  fetch.Getter
	baseURL string
	site    string
	key     string
	pool    *Pool
	logger  *zap.Logger
}

// NewStackExchange creates the Q&A-site adapter.
func NewStackExchange(getter fetch.Getter, cfg config.StackExchangeConfig, pool *Pool, logger *zap.Logger) *StackExchange {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StackExchange{
		getter:  getter,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		site:    cfg.Site,
		key:     cfg.Key,
		pool:    pool,
		logger:  logger,
	}
}

// Name implements Source.
func (s *StackExchange) Name() models.SourceKind {
	return models.SourceQASite
}

type stackUser struct {
	UserID      int64   `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Link        string  `json:"link"`
	Location    *string `json:"location"`
	WebsiteURL  *string `json:"website_url"`
}

type stackUsersResponse struct {
	Items []stackUser `json:"items"`
}

type stackTagsResponse struct {
	Items []struct {
		TagName string `json:"tag_name"`
	} `json:"items"`
}

// Search implements Source. Only the first term is matched against display names.
func (s *StackExchange) Search(ctx context.Context, req SearchRequest) ([]*models.Candidate, error) {
	top := stackDefaultTerm
	if len(req.Terms) > 0 {
		top = req.Terms[0]
	}

	raw, err := s.getter.GetJSON(ctx, s.baseURL+"/users", s.opts(
		fetch.WithQuery("order", "desc"),
		fetch.WithQuery("sort", "reputation"),
		fetch.WithQuery("inname", top),
		fetch.WithQuery("pagesize", strconv.Itoa(req.pageSize(1, PerSourceCap))),
	)...)
	if err != nil {
		return nil, err
	}
	var users stackUsersResponse
	if err := decode(s.Name(), raw, &users); err != nil {
		return nil, err
	}

	cfg := req.scoring()
	found := make([]*models.Candidate, len(users.Items))
	errs := s.pool.Map(ctx, len(users.Items), func(ctx context.Context, i int) error {
		tags, err := s.topTags(ctx, users.Items[i].UserID)
		if err != nil {
			return err
		}
		found[i] = s.candidate(users.Items[i], tags, req, cfg)
		return nil
	})

	out := make([]*models.Candidate, 0, len(found))
	for i, c := range found {
		if errs[i] != nil {
			s.logger.Debug("stackexchange top-tags failed",
				zap.Int64("user_id", users.Items[i].UserID),
				zap.Error(errs[i]),
			)
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *StackExchange) topTags(ctx context.Context, userID int64) ([]string, error) {
	raw, err := s.getter.GetJSON(ctx, s.baseURL+"/users/"+strconv.FormatInt(userID, 10)+"/top-tags", s.opts(
		fetch.WithQuery("pagesize", strconv.Itoa(stackTopTagCount)),
	)...)
	if err != nil {
		return nil, err
	}
	var resp stackTagsResponse
	if err := decode(s.Name(), raw, &resp); err != nil {
		return nil, err
	}
	tags := make([]string, 0, len(resp.Items))
	for _, it := range resp.Items {
		if it.TagName != "" {
			tags = append(tags, it.TagName)
		}
	}
	return tags, nil
}

func (s *StackExchange) candidate(u stackUser, tags []string, req SearchRequest, cfg *ranking.ScoringConfig) *models.Candidate {
	display := html.UnescapeString(u.DisplayName)
	text := display + " " + strings.Join(tags, " ")
	score := ranking.ScoreText(text, req.Terms, cfg)
	if u.Location != nil && ranking.LocationMatches(html.UnescapeString(*u.Location), req.Location) {
		score += cfg.QALocationBonus
	}

	var location *string
	if u.Location != nil {
		location = utils.StringPtr(html.UnescapeString(*u.Location))
	}
	return &models.Candidate{
		Source:     s.Name(),
		Name:       utils.StringPtr(display),
		Username:   utils.StringPtr(strconv.FormatInt(u.UserID, 10)),
		ProfileURL: utils.StringPtr(u.Link),
		Blog:       nonEmpty(u.WebsiteURL),
		Location:   location,
		Evidence:   models.QASiteEvidence{TopTags: tags},
		Score:      score,
	}
}

func (s *StackExchange) opts(extra ...fetch.RequestOption) []fetch.RequestOption {
	opts := []fetch.RequestOption{fetch.WithQuery("site", s.site)}
	if s.key != "" {
		opts = append(opts, fetch.WithQuery("key", s.key))
	}
	return append(opts, extra...)
}
