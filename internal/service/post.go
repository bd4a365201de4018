package service

import (
	"context"

	"github.com/microblog/backend/internal/db"
	"github.com/microblog/backend/internal/model"
)

// Fixed page size, matching the public listing behavior.
const postsPerPage = 5

type PostRepo interface {
	CreatePost(ctx context.Context, title, content string, userID int64) (*model.Post, error)
	GetPostByID(ctx context.Context, id int64) (*model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id int64) (int64, error)
	ListPosts(ctx context.Context, limit, offset int) ([]model.Post, error)
}

type PostService struct {
	repo PostRepo
}

func NewPostService(repo PostRepo) *PostService {
	return &PostService{repo: repo}
}

// List returns one fixed-size page of posts in id order. Pages run from 1;
// anything lower is clamped and pages past the end come back empty.
func (s *PostService) List(ctx context.Context, page int) ([]model.PostResponse, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * postsPerPage

	posts, err := s.repo.ListPosts(ctx, postsPerPage, offset)
	if err != nil {
		return nil, err
	}

	result := make([]model.PostResponse, 0, len(posts))
	for _, p := range posts {
		result = append(result, model.PostResponse{
			ID:      p.ID,
			Title:   p.Title,
			Content: p.Content,
		})
	}
	return result, nil
}

// Create inserts a post owned by the authenticated user. The owner always
// comes from the verified identity, never from the request body.
func (s *PostService) Create(ctx context.Context, userID int64, title, content string) error {
	_, err := s.repo.CreatePost(ctx, title, content, userID)
	return err
}

// Update merges the supplied fields into the stored post. A nil field
// keeps its current value.
func (s *PostService) Update(ctx context.Context, id int64, title, content *string) error {
	post, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}

	if title != nil {
		post.Title = *title
	}
	if content != nil {
		post.Content = *content
	}

	return s.repo.UpdatePost(ctx, post)
}

func (s *PostService) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.DeletePost(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
