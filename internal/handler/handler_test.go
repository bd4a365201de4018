package handler

import (
	"context"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/microblog/backend/internal/config"
	"github.com/microblog/backend/internal/model"
	"github.com/microblog/backend/internal/service"
)

// Per-package fakes mirroring the Postgres repo, so handler tests run the
// full middleware/handler/service path without a database.

type fakeUserRepo struct {
	users  map[string]*model.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, username, password string) (*model.User, error) {
	if _, ok := f.users[username]; ok {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	f.nextID++
	user := &model.User{ID: f.nextID, Username: username, Password: password}
	f.users[username] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

type fakePostRepo struct {
	posts  map[int64]*model.Post
	nextID int64
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[int64]*model.Post{}}
}

func (f *fakePostRepo) CreatePost(ctx context.Context, title, content string, userID int64) (*model.Post, error) {
	f.nextID++
	post := &model.Post{ID: f.nextID, Title: title, Content: content, UserID: userID}
	f.posts[post.ID] = post
	return post, nil
}

func (f *fakePostRepo) GetPostByID(ctx context.Context, id int64) (*model.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *post
	return &copied, nil
}

func (f *fakePostRepo) UpdatePost(ctx context.Context, post *model.Post) error {
	if _, ok := f.posts[post.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *post
	f.posts[post.ID] = &copied
	return nil
}

func (f *fakePostRepo) DeletePost(ctx context.Context, id int64) (int64, error) {
	if _, ok := f.posts[id]; !ok {
		return 0, nil
	}
	delete(f.posts, id)
	return 1, nil
}

func (f *fakePostRepo) ListPosts(ctx context.Context, limit, offset int) ([]model.Post, error) {
	ids := make([]int64, 0, len(f.posts))
	for id := range f.posts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	list := []model.Post{}
	for i := offset; i < len(ids) && len(list) < limit; i++ {
		list = append(list, *f.posts[ids[i]])
	}
	return list, nil
}

func newTestAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	svc, err := service.NewAuthService(newFakeUserRepo(), config.AuthConfig{JWTSecret: "test-secret", TokenTTL: "1h"})
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	return svc
}

// newTestRouter wires the same route table as main.go over fake repos and
// returns a token for a pre-registered user.
func newTestRouter(t *testing.T) (*gin.Engine, *fakePostRepo, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := newFakeUserRepo()
	postRepo := newFakePostRepo()

	authService, err := service.NewAuthService(userRepo, config.AuthConfig{JWTSecret: "test-secret", TokenTTL: "1h"})
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	postService := service.NewPostService(postRepo)

	user, err := userRepo.CreateUser(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	token, err := authService.IssueToken(user.ID)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	authHandler := NewAuthHandler(authService)
	postHandler := NewPostHandler(postService)

	r := gin.New()
	r.Use(gin.CustomRecovery(Recovered))
	r.NoRoute(NotFound)
	r.GET("/health", Health)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/posts", postHandler.List)

	protected := r.Group("/", AuthMiddleware(authService))
	protected.POST("/posts", postHandler.Create)
	protected.PUT("/posts/:id", postHandler.Update)
	protected.DELETE("/posts/:id", postHandler.Delete)

	return r, postRepo, token
}
