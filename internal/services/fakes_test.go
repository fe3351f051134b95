package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rafabene/aeo-studio/internal/auth"
	"github.com/rafabene/aeo-studio/internal/domain/entities"
	"github.com/rafabene/aeo-studio/internal/domain/ports"
	"github.com/rafabene/aeo-studio/internal/domain/repositories"
)

// Fakes em memória dos ports usados pelos serviços

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entities.User
	saves int
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entities.User{}}
}

func (r *fakeUserRepo) add(u *entities.User) *entities.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.ApplyDefaults()
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(_ context.Context, user *entities.User) error {
	if r.err != nil {
		return r.err
	}
	r.add(user)
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email.String() == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entities.User) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) SaveAEOResult(_ context.Context, userID string, result entities.AEOResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if u, ok := r.users[userID]; ok {
		u.AEO = &result
	}
	return nil
}

func (r *fakeUserRepo) get(id string) *entities.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id]
}

type fakeTopicRepo struct {
	mu     sync.Mutex
	topics []*entities.Topic
	seq    int
	err    error
}

func (r *fakeTopicRepo) Create(_ context.Context, topic *entities.Topic) error {
	return r.CreateMany(context.Background(), []*entities.Topic{topic})
}

func (r *fakeTopicRepo) CreateMany(_ context.Context, topics []*entities.Topic) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range topics {
		r.seq++
		t.ID = uuid.NewString()
		t.CreatedAt = time.UnixMilli(int64(r.seq))
		clone := *t
		r.topics = append(r.topics, &clone)
	}
	return nil
}

func (r *fakeTopicRepo) find(id, userID string) *entities.Topic {
	for _, t := range r.topics {
		if t.ID == id && t.UserID == userID {
			return t
		}
	}
	return nil
}

func (r *fakeTopicRepo) FindByID(_ context.Context, id, userID string) (*entities.Topic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.find(id, userID)
	if t == nil {
		return nil, nil
	}
	clone := *t
	return &clone, nil
}

func (r *fakeTopicRepo) ListByUser(_ context.Context, userID string, filters repositories.TopicFilters) ([]*entities.Topic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entities.Topic
	for _, t := range r.topics {
		if t.UserID != userID {
			continue
		}
		if filters.Status != nil && t.Status != *filters.Status {
			continue
		}
		clone := *t
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *fakeTopicRepo) mutate(id, userID string, fn func(*entities.Topic)) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.find(id, userID)
	if t == nil {
		return 0, nil
	}
	fn(t)
	return 1, nil
}

func (r *fakeTopicRepo) UpdateStatus(_ context.Context, id, userID string, status entities.Status) (int64, error) {
	return r.mutate(id, userID, func(t *entities.Topic) { t.Status = status })
}

func (r *fakeTopicRepo) UpdateContent(_ context.Context, id, userID, content string) (int64, error) {
	return r.mutate(id, userID, func(t *entities.Topic) { t.Content = content })
}

func (r *fakeTopicRepo) SetEntities(_ context.Context, id, userID string, list []string) (int64, error) {
	return r.mutate(id, userID, func(t *entities.Topic) { t.Entities = append([]string(nil), list...) })
}

func (r *fakeTopicRepo) Delete(_ context.Context, id, userID string) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.topics {
		if t.ID == id && t.UserID == userID {
			r.topics = append(r.topics[:i], r.topics[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeTopicRepo) count(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.topics {
		if t.UserID == userID {
			n++
		}
	}
	return n
}

type fakeCompetitorRepo struct {
	mu          sync.Mutex
	competitors []*entities.Competitor
	err         error
}

func (r *fakeCompetitorRepo) Create(ctx context.Context, c *entities.Competitor) error {
	return r.CreateMany(ctx, []*entities.Competitor{c})
}

func (r *fakeCompetitorRepo) CreateMany(_ context.Context, list []*entities.Competitor) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range list {
		c.ID = uuid.NewString()
		clone := *c
		r.competitors = append(r.competitors, &clone)
	}
	return nil
}

func (r *fakeCompetitorRepo) FindByID(_ context.Context, id, userID string) (*entities.Competitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.competitors {
		if c.ID == id && c.UserID == userID {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeCompetitorRepo) ListByUser(_ context.Context, userID string) ([]*entities.Competitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []*entities.Competitor{}
	for _, c := range r.competitors {
		if c.UserID == userID {
			clone := *c
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeCompetitorRepo) Delete(_ context.Context, id, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.competitors {
		if c.ID == id && c.UserID == userID {
			r.competitors = append(r.competitors[:i], r.competitors[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeCompetitorRepo) SearchNames(_ context.Context, userID, query string, limit int) ([]entities.CompetitorMatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]bool{}
	result := []entities.CompetitorMatch{}
	for _, c := range r.competitors {
		key := strings.ToLower(c.Name)
		if c.UserID != userID || seen[key] || !strings.Contains(key, strings.ToLower(query)) {
			continue
		}
		seen[key] = true
		result = append(result, entities.CompetitorMatch{Name: c.Name, URL: c.URL})
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

// fakeUnitOfWork executa fn direto; um erro de fn é devolvido como rollback
type fakeUnitOfWork struct {
	calls int
}

func (u *fakeUnitOfWork) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	u.calls++
	return fn(ctx)
}

type fakeGenerator struct {
	mu      sync.Mutex
	outputs []string
	err     error
	prompts []string
	opts    []ports.GenerateOptions
}

func (g *fakeGenerator) respond(outputs ...string) {
	g.outputs = append(g.outputs, outputs...)
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string, opts ports.GenerateOptions) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	g.opts = append(g.opts, opts)
	if g.err != nil {
		return "", g.err
	}
	if len(g.outputs) == 0 {
		return "", fmt.Errorf("fake generator: no output queued")
	}
	out := g.outputs[0]
	g.outputs = g.outputs[1:]
	return out, nil
}

func (g *fakeGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

type fakeFetcher struct {
	mu       sync.Mutex
	pages    map[string]*ports.Page
	failures map[string]error
	requests []ports.FetchOptions
	urls     []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{pages: map[string]*ports.Page{}, failures: map[string]error{}}
}

func (f *fakeFetcher) serve(url string, status int, html string) {
	f.pages[url] = &ports.Page{URL: url, Status: status, HTML: html}
}

func (f *fakeFetcher) Fetch(_ context.Context, url string, opts ports.FetchOptions) (*ports.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
	f.requests = append(f.requests, opts)
	if err, ok := f.failures[url]; ok {
		return nil, err
	}
	if page, ok := f.pages[url]; ok {
		return page, nil
	}
	return &ports.Page{URL: url, Status: 404}, nil
}

type fakePublisher struct {
	err      error
	url      string
	articles []ports.PublishedArticle
}

func (p *fakePublisher) Publish(_ context.Context, url string, article ports.PublishedArticle) error {
	p.url = url
	p.articles = append(p.articles, article)
	return p.err
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) PipelineChanged(userID, reason string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, userID+":"+reason)
}

func (n *recordingNotifier) reasons() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

type fakeTokens struct{}

func (fakeTokens) GenerateAccessToken(userID string) (string, time.Time, error) {
	return "token-" + userID, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func asUser(userID string) context.Context {
	return auth.WithUserID(context.Background(), userID)
}

func fixedClock(t time.Time) clock {
	return func() time.Time { return t }
}

const samplePage = `<html><head><title>%s</title>
<meta name="description" content="%s"></head>
<body><h1>%s</h1><h2>Pricing</h2><h2>Features</h2>
<p>Plenty of readable text describing the product, the audience and the pricing model in detail.</p>
</body></html>`

func pageFor(name string) string {
	return fmt.Sprintf(samplePage, name+" home", name+" description", name)
}
