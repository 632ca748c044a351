package repository

import (
	"github.com/deppfellow/awesome-blog/internal/orm"
	"github.com/deppfellow/awesome-blog/internal/server"
)

// Repositories groups every repository so services take a single dependency.
type Repositories struct {
	Users    *UserRepository
	Blogs    *BlogRepository
	Comments *CommentRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return New(s.DB.Pool)
}

// New builds the repositories over any pgx pool, connection or transaction.
func New(db orm.DBTX) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(db),
		Blogs:    NewBlogRepository(db),
		Comments: NewCommentRepository(db),
	}
}
