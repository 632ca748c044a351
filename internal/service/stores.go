package service

import (
	"context"

	"github.com/deppfellow/awesome-blog/internal/model"
	"github.com/hibiken/asynq"
)

type userStore interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) ([]*model.User, error)
	Create(ctx context.Context, user *model.User) error
	ListPage(ctx context.Context, index, size int64) (model.Page, []*model.User, error)
}

type blogStore interface {
	GetByID(ctx context.Context, id string) (*model.Blog, error)
	Create(ctx context.Context, blog *model.Blog) error
	Update(ctx context.Context, blog *model.Blog) error
	Delete(ctx context.Context, blog *model.Blog) error
	ListPage(ctx context.Context, index, size int64) (model.Page, []*model.Blog, error)
}

type commentStore interface {
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	Create(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, comment *model.Comment) error
	ListPage(ctx context.Context, index, size int64) (model.Page, []*model.Comment, error)
	ListByBlog(ctx context.Context, blogID string) ([]*model.Comment, error)
}

// Enqueuer submits background tasks.
type Enqueuer interface {
	Enqueue(ctx context.Context, task *asynq.Task) (*asynq.TaskInfo, error)
}
