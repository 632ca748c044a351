// Package repository reads and writes the blog's tables.
//
// Every repository is a thin typed layer over an orm.Table; the SQL itself is
// generated from the model's struct tags.
package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/awesome-blog/internal/model"
	"github.com/deppfellow/awesome-blog/internal/orm"
	"github.com/jackc/pgx/v5"
)

// CRUD is the shared set of single-table operations.
type CRUD[T any] struct {
	db    orm.DBTX
	table *orm.Table[T]
}

func newCRUD[T any](db orm.DBTX) CRUD[T] {
	return CRUD[T]{db: db, table: orm.MustTable[T]()}
}

// GetByID loads a row by primary key. A missing row wraps pgx.ErrNoRows.
func (r CRUD[T]) GetByID(ctx context.Context, id string) (*T, error) {
	return r.table.Find(ctx, r.db, id)
}

// Create inserts item, filling its id and creation time first.
func (r CRUD[T]) Create(ctx context.Context, item *T) error {
	return r.table.Save(ctx, r.db, item)
}

// Update writes item back. A row that no longer exists reads as not found.
func (r CRUD[T]) Update(ctx context.Context, item *T) error {
	return notFound(r.table.Update(ctx, r.db, item))
}

// Delete removes item by primary key. A missing row reads as not found.
func (r CRUD[T]) Delete(ctx context.Context, item *T) error {
	return notFound(r.table.Remove(ctx, r.db, item))
}

func notFound(err error) error {
	if orm.IsNotAffected(err) {
		return fmt.Errorf("%w: %w", err, pgx.ErrNoRows)
	}
	return err
}

// Count returns the number of rows in the table.
func (r CRUD[T]) Count(ctx context.Context) (int64, error) {
	return r.table.FindNumber(ctx, r.db, "count(id)", "")
}

// ListPage returns the rows of page, newest first, after counting the table.
func (r CRUD[T]) ListPage(ctx context.Context, index, size int64) (model.Page, []*T, error) {
	count, err := r.Count(ctx)
	if err != nil {
		return model.Page{}, nil, fmt.Errorf("counting %s: %w", r.table.Name(), err)
	}

	page := model.NewPage(count, index, size)
	if page.Empty() {
		return page, []*T{}, nil
	}

	items, err := r.table.FindAll(ctx, r.db, orm.Query{
		OrderBy: "created_at desc",
		Limit:   int(page.Limit),
		Offset:  int(page.Offset),
	})
	if err != nil {
		return page, nil, err
	}
	return page, items, nil
}

// UserRepository stores accounts.
type UserRepository struct {
	CRUD[model.User]
}

func NewUserRepository(db orm.DBTX) *UserRepository {
	return &UserRepository{CRUD: newCRUD[model.User](db)}
}

// FindByEmail returns the users with the given address; at most one exists.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) ([]*model.User, error) {
	return r.table.FindAll(ctx, r.db, orm.Query{Where: "email=?", Args: []any{email}})
}

// BlogRepository stores blogs.
type BlogRepository struct {
	CRUD[model.Blog]
}

func NewBlogRepository(db orm.DBTX) *BlogRepository {
	return &BlogRepository{CRUD: newCRUD[model.Blog](db)}
}

// CommentRepository stores comments.
type CommentRepository struct {
	CRUD[model.Comment]
}

func NewCommentRepository(db orm.DBTX) *CommentRepository {
	return &CommentRepository{CRUD: newCRUD[model.Comment](db)}
}

// ListByBlog returns the comments of a blog, newest first.
func (r *CommentRepository) ListByBlog(ctx context.Context, blogID string) ([]*model.Comment, error) {
	return r.table.FindAll(ctx, r.db, orm.Query{
		Where:   "blog_id=?",
		Args:    []any{blogID},
		OrderBy: "created_at desc",
	})
}
