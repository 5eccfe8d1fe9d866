package sources

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/ideaworks/internal/config"
	"github.com/hyperjump/ideaworks/internal/fetch"
	"github.com/hyperjump/ideaworks/internal/models"
	"github.com/hyperjump/ideaworks/internal/ranking"
	"github.com/hyperjump/ideaworks/internal/terms"
	"github.com/hyperjump/ideaworks/pkg/utils"
)

const (
	githubAccept       = "application/vnd.github+json"
	githubDefaultTerm  = "developer"
	githubMaxORTerms   = 6
	githubMinTermLen   = 3
	githubTopRepoCount = 5
)

// GitHub finds accounts whose login, name, bio or readme match the terms.
type GitHub struct {
	getter  fetch.Getter
	baseURL string
	token   string
	pool    *Pool
	logger  *zap.Logger
}

// NewGitHub creates the code-hosting adapter.
func NewGitHub(getter fetch.Getter, cfg config.GitHubConfig, pool *Pool, logger *zap.Logger) *GitHub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitHub{
		getter:  getter,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		pool:    pool,
		logger:  logger,
	}
}

// Name implements Source.
func (g *GitHub) Name() models.SourceKind {
	return models.SourceCodeHosting
}

type githubSearchResponse struct {
	Items []struct {
		Login string `json:"login"`
	} `json:"items"`
}

type githubUser struct {
	Login    string  `json:"login"`
	Name     string  `json:"name"`
	HTMLURL  string  `json:"html_url"`
	Email    *string `json:"email"`
	Blog     *string `json:"blog"`
	Location *string `json:"location"`
	Company  *string `json:"company"`
	Bio      *string `json:"bio"`
}

type githubRepo struct {
	Name            string  `json:"name"`
	HTMLURL         string  `json:"html_url"`
	StargazersCount int     `json:"stargazers_count"`
	Language        *string `json:"language"`
}

// Search implements Source. The first pass is restricted to the requested location;
// when it finds nobody a broader pass without location and readme runs.
func (g *GitHub) Search(ctx context.Context, req SearchRequest) ([]*models.Candidate, error) {
	orBlock := githubORBlock(req.Terms)
	perPage := req.pageSize(1, PerSourceCap)

	logins, err := g.searchUsers(ctx, githubQueryWithLocation(orBlock, req.Location), perPage)
	if err != nil {
		return nil, err
	}
	if len(logins) == 0 {
		logins, err = g.searchUsers(ctx, fmt.Sprintf("(%s) in:login in:name in:bio", orBlock), perPage)
		if err != nil {
			return nil, err
		}
	}

	cfg := req.scoring()
	found := make([]*models.Candidate, len(logins))
	errs := g.pool.Map(ctx, len(logins), func(ctx context.Context, i int) error {
		c, err := g.enrich(ctx, logins[i], req.Terms, cfg)
		if err != nil {
			return err
		}
		found[i] = c
		return nil
	})

	out := make([]*models.Candidate, 0, len(logins))
	for i, c := range found {
		if errs[i] != nil {
			g.logger.Debug("github enrichment failed",
				zap.String("login", logins[i]),
				zap.Error(errs[i]),
			)
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// githubORBlock quotes up to six terms of three or more characters and joins them with OR.
func githubORBlock(searchTerms []string) string {
	key := terms.Qualifying(searchTerms, githubMinTermLen, githubMaxORTerms)
	if len(key) == 0 {
		key = []string{githubDefaultTerm}
	}
	quoted := make([]string, len(key))
	for i, t := range key {
		quoted[i] = strconv.Quote(t)
	}
	return strings.Join(quoted, " OR ")
}

func githubQueryWithLocation(orBlock, location string) string {
	q := fmt.Sprintf("(%s) in:login in:name in:bio in:readme", orBlock)
	if location == "" {
		return q
	}
	if strings.ContainsAny(location, " \t") {
		return q + " location:" + strconv.Quote(location)
	}
	return q + " location:" + location
}

func (g *GitHub) searchUsers(ctx context.Context, q string, perPage int) ([]string, error) {
	raw, err := g.getter.GetJSON(ctx, g.baseURL+"/search/users", g.opts(
		fetch.WithQuery("q", q),
		fetch.WithQuery("per_page", strconv.Itoa(perPage)),
	)...)
	if err != nil {
		return nil, err
	}
	var resp githubSearchResponse
	if err := decode(g.Name(), raw, &resp); err != nil {
		return nil, err
	}
	logins := make([]string, 0, len(resp.Items))
	for _, it := range resp.Items {
		if it.Login != "" {
			logins = append(logins, it.Login)
		}
	}
	return logins, nil
}

func (g *GitHub) enrich(ctx context.Context, login string, searchTerms []string, cfg *ranking.ScoringConfig) (*models.Candidate, error) {
	escaped := url.PathEscape(login)

	raw, err := g.getter.GetJSON(ctx, g.baseURL+"/users/"+escaped, g.opts()...)
	if err != nil {
		return nil, err
	}
	var user githubUser
	if err := decode(g.Name(), raw, &user); err != nil {
		return nil, err
	}

	raw, err = g.getter.GetJSON(ctx, g.baseURL+"/users/"+escaped+"/repos", g.opts(
		fetch.WithQuery("sort", "stars"),
		fetch.WithQuery("direction", "desc"),
		fetch.WithQuery("per_page", strconv.Itoa(githubTopRepoCount)),
	)...)
	if err != nil {
		return nil, err
	}
	var repos []githubRepo
	if err := decode(g.Name(), raw, &repos); err != nil {
		return nil, err
	}

	repoNames := make([]string, len(repos))
	evidence := models.CodeHostingEvidence{TopRepos: make([]models.RepoEvidence, len(repos))}
	for i, r := range repos {
		repoNames[i] = r.Name
		evidence.TopRepos[i] = models.RepoEvidence{
			Name:     r.Name,
			URL:      r.HTMLURL,
			Stars:    r.StargazersCount,
			Language: r.Language,
		}
	}

	text := strings.Join([]string{
		utils.Deref(user.Bio),
		utils.Deref(user.Company),
		utils.Deref(user.Blog),
		strings.Join(repoNames, " "),
	}, " ")
	score := ranking.ScoreText(text, searchTerms, cfg) + ranking.ItemBonus(len(repos), cfg.GitHubRepoBonus, cfg)

	return &models.Candidate{
		Source:      g.Name(),
		Name:        utils.StringPtr(utils.FirstNonEmpty(user.Name, login)),
		Username:    utils.StringPtr(login),
		ProfileURL:  utils.StringPtr(utils.FirstNonEmpty(user.HTMLURL, "https://github.com/"+login)),
		PublicEmail: nonEmpty(user.Email),
		Blog:        nonEmpty(user.Blog),
		Location:    nonEmpty(user.Location),
		Company:     nonEmpty(user.Company),
		Evidence:    evidence,
		Score:       score,
	}, nil
}

func (g *GitHub) opts(extra ...fetch.RequestOption) []fetch.RequestOption {
	return append([]fetch.RequestOption{
		fetch.WithHeader("Accept", githubAccept),
		fetch.WithBearerToken(g.token),
	}, extra...)
}

// nonEmpty maps "" to nil so blank upstream fields serialize as null.
func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
