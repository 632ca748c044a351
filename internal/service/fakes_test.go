package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/awesome-blog/internal/model"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
)

func notFound(table string) error {
	return fmt.Errorf("table:%s: %w", table, pgx.ErrNoRows)
}

type memUsers struct {
	byID map[string]*model.User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*model.User{}} }

func (m *memUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, notFound("users")
}

func (m *memUsers) FindByEmail(_ context.Context, email string) ([]*model.User, error) {
	var out []*model.User
	for _, u := range m.byID {
		if u.Email == email {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUsers) Create(_ context.Context, u *model.User) error {
	u.ApplyDefaults()
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) ListPage(_ context.Context, index, size int64) (model.Page, []*model.User, error) {
	page := model.NewPage(int64(len(m.byID)), index, size)
	return page, []*model.User{}, nil
}

type memBlogs struct {
	byID    map[string]*model.Blog
	updated int
}

func newMemBlogs() *memBlogs { return &memBlogs{byID: map[string]*model.Blog{}} }

func (m *memBlogs) GetByID(_ context.Context, id string) (*model.Blog, error) {
	if b, ok := m.byID[id]; ok {
		return b, nil
	}
	return nil, notFound("blogs")
}

func (m *memBlogs) Create(_ context.Context, b *model.Blog) error {
	b.ApplyDefaults()
	m.byID[b.ID] = b
	return nil
}

func (m *memBlogs) Update(_ context.Context, b *model.Blog) error {
	m.updated++
	m.byID[b.ID] = b
	return nil
}

func (m *memBlogs) Delete(_ context.Context, b *model.Blog) error {
	delete(m.byID, b.ID)
	return nil
}

func (m *memBlogs) ListPage(_ context.Context, index, size int64) (model.Page, []*model.Blog, error) {
	page := model.NewPage(int64(len(m.byID)), index, size)
	items := make([]*model.Blog, 0, len(m.byID))
	for _, b := range m.byID {
		items = append(items, b)
	}
	return page, items, nil
}

type memComments struct {
	byID map[string]*model.Comment
}

func newMemComments() *memComments { return &memComments{byID: map[string]*model.Comment{}} }

func (m *memComments) GetByID(_ context.Context, id string) (*model.Comment, error) {
	if c, ok := m.byID[id]; ok {
		return c, nil
	}
	return nil, notFound("comments")
}

func (m *memComments) Create(_ context.Context, c *model.Comment) error {
	c.ApplyDefaults()
	m.byID[c.ID] = c
	return nil
}

func (m *memComments) Delete(_ context.Context, c *model.Comment) error {
	delete(m.byID, c.ID)
	return nil
}

func (m *memComments) ListPage(_ context.Context, index, size int64) (model.Page, []*model.Comment, error) {
	return model.NewPage(int64(len(m.byID)), index, size), []*model.Comment{}, nil
}

func (m *memComments) ListByBlog(_ context.Context, blogID string) ([]*model.Comment, error) {
	var out []*model.Comment
	for _, c := range m.byID {
		if c.BlogID == blogID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) Enqueue(_ context.Context, task *asynq.Task) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: fmt.Sprintf("task-%d", len(f.tasks))}, nil
}
