package db

import (
	"context"

	"github.com/microblog/backend/internal/model"
)

func (db *Postgres) CreatePost(ctx context.Context, title, content string, userID int64) (*model.Post, error) {
	query := `
		INSERT INTO posts (title, content, user_id, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, title, content, user_id, created_at
	`
	var post model.Post
	err := db.Pool.QueryRow(ctx, query, title, content, userID).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.UserID,
		&post.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (db *Postgres) GetPostByID(ctx context.Context, id int64) (*model.Post, error) {
	query := `
		SELECT id, title, content, user_id, created_at
		FROM posts
		WHERE id = $1
	`
	var post model.Post
	err := db.Pool.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.UserID,
		&post.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (db *Postgres) UpdatePost(ctx context.Context, post *model.Post) error {
	query := `
		UPDATE posts
		SET title = $1, content = $2
		WHERE id = $3
	`
	_, err := db.Pool.Exec(ctx, query, post.Title, post.Content, post.ID)
	return err
}

func (db *Postgres) DeletePost(ctx context.Context, id int64) (int64, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (db *Postgres) ListPosts(ctx context.Context, limit, offset int) ([]model.Post, error) {
	query := `
		SELECT id, title, content, user_id, created_at
		FROM posts
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	rows, err := db.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.UserID, &p.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if list == nil {
		list = []model.Post{}
	}
	return list, nil
}
