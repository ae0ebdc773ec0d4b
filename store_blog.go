package agrisite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const postColumns = `id, title, content, excerpt, author, category, slug,
	cover_image_url, published, likes_count, shares_count, created_at`

// CreatePost inserts a new blog post. The slug is computed from the title
// once, here; duplicate slugs get a numeric suffix so every post stays
// reachable by its own URL.
func (s *Store) CreatePost(p *BlogPost) error {
	p.ID = uuid.NewString()
	p.CreatedAt = now()
	slug, err := s.uniqueSlug(Slugify(p.Title))
	if err != nil {
		return err
	}
	p.Slug = slug
	published := 0
	if p.Published {
		published = 1
	}
	_, err = s.db.Exec(`INSERT INTO blog_posts (id, title, content, excerpt, author,
		category, slug, cover_image_url, published, likes_count, shares_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0, ?)`,
		p.ID, p.Title, p.Content, p.Excerpt, p.Author, p.Category, p.Slug,
		p.CoverImageURL, published, p.CreatedAt)
	return err
}

// uniqueSlug appends a counter when the base slug is already taken.
func (s *Store) uniqueSlug(base string) (string, error) {
	if base == "" {
		base = "post"
	}
	candidate := base
	for counter := 2; ; counter++ {
		var n int
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM blog_posts WHERE slug = ?`, candidate).Scan(&n); err != nil {
			return "", err
		}
		if n == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

// ListPosts returns blog posts newest first. When publishedOnly is set,
// drafts are excluded (the public listing); the admin dashboard lists all.
func (s *Store) ListPosts(publishedOnly bool) ([]BlogPost, error) {
	q := `SELECT ` + postColumns + ` FROM blog_posts ORDER BY created_at DESC, id`
	if publishedOnly {
		q = `SELECT ` + postColumns + ` FROM blog_posts WHERE published = 1 ORDER BY created_at DESC, id`
	}
	rows, err := s.db.Query(q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPostBySlug returns a single published post by slug.
func (s *Store) GetPostBySlug(slug string) (BlogPost, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM blog_posts WHERE slug = ? AND published = 1`, slug)
	return scanPost(row)
}

// GetPost returns a post by id regardless of published status (for admin).
func (s *Store) GetPost(id string) (BlogPost, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM blog_posts WHERE id = ?`, id)
	return scanPost(row)
}

// DeletePost removes a post row; comments and likes follow via the foreign
// key cascade. Returns ErrNotFound if no row matched.
func (s *Store) DeletePost(id string) error {
	res, err := s.db.Exec(`DELETE FROM blog_posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPost(r rowScanner) (BlogPost, error) {
	var p BlogPost
	var published int
	err := r.Scan(&p.ID, &p.Title, &p.Content, &p.Excerpt, &p.Author, &p.Category,
		&p.Slug, &p.CoverImageURL, &published, &p.LikesCount, &p.SharesCount, &p.CreatedAt)
	if err != nil {
		return BlogPost{}, err
	}
	p.Published = published == 1
	p.Link = "/blog/" + p.Slug
	return p, nil
}

// ToggleLike flips the like state for one visitor on one post inside a single
// transaction: the like row and the counter move together or not at all. The
// counter never drops below zero.
func (s *Store) ToggleLike(postID, visitor string) (liked bool, likes int, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback()

	var likeID string
	err = tx.QueryRow(`SELECT id FROM blog_likes WHERE blog_post_id = ? AND user_identifier = ?`,
		postID, visitor).Scan(&likeID)
	switch {
	case err == sql.ErrNoRows:
		if _, err := tx.Exec(`INSERT INTO blog_likes (id, blog_post_id, user_identifier, created_at)
			VALUES (?, ?, ?, ?)`, uuid.NewString(), postID, visitor, now()); err != nil {
			return false, 0, err
		}
		if _, err := tx.Exec(`UPDATE blog_posts SET likes_count = likes_count + 1 WHERE id = ?`, postID); err != nil {
			return false, 0, err
		}
		liked = true
	case err != nil:
		return false, 0, err
	default:
		if _, err := tx.Exec(`DELETE FROM blog_likes WHERE id = ?`, likeID); err != nil {
			return false, 0, err
		}
		if _, err := tx.Exec(`UPDATE blog_posts SET likes_count = MAX(likes_count - 1, 0) WHERE id = ?`, postID); err != nil {
			return false, 0, err
		}
	}

	if err := tx.QueryRow(`SELECT likes_count FROM blog_posts WHERE id = ?`, postID).Scan(&likes); err != nil {
		if err == sql.ErrNoRows {
			return false, 0, ErrNotFound
		}
		return false, 0, err
	}
	if err := tx.Commit(); err != nil {
		return false, 0, err
	}
	return liked, likes, nil
}

// LikedPosts returns the set of post IDs this visitor has liked.
func (s *Store) LikedPosts(visitor string) (map[string]bool, error) {
	rows, err := s.db.Query(`SELECT blog_post_id FROM blog_likes WHERE user_identifier = ?`, visitor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	liked := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		liked[id] = true
	}
	return liked, rows.Err()
}

// IncrementShares bumps a post's share counter atomically in SQL and returns
// the new value. Concurrent shares cannot lose updates.
func (s *Store) IncrementShares(postID string) (int, error) {
	res, err := s.db.Exec(`UPDATE blog_posts SET shares_count = shares_count + 1 WHERE id = ?`, postID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrNotFound
	}
	var shares int
	if err := s.db.QueryRow(`SELECT shares_count FROM blog_posts WHERE id = ?`, postID).Scan(&shares); err != nil {
		return 0, err
	}
	return shares, nil
}

// ListComments returns a post's comments newest first. An empty slice is a
// valid result, not an error.
func (s *Store) ListComments(postID string) ([]BlogComment, error) {
	rows, err := s.db.Query(`SELECT id, blog_post_id, user_name, user_email, comment_text, created_at
		FROM blog_comments WHERE blog_post_id = ? ORDER BY created_at DESC, id`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []BlogComment
	for rows.Next() {
		var c BlogComment
		if err := rows.Scan(&c.ID, &c.BlogPostID, &c.UserName, &c.UserEmail, &c.CommentText, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// AddComment inserts a comment, assigning its ID and creation timestamp.
func (s *Store) AddComment(c *BlogComment) error {
	c.ID = uuid.NewString()
	c.CreatedAt = now()
	_, err := s.db.Exec(`INSERT INTO blog_comments (id, blog_post_id, user_name, user_email, comment_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.BlogPostID, c.UserName, c.UserEmail, c.CommentText, c.CreatedAt)
	return err
}

// CommentCounts returns the number of comments per post for every post that
// has at least one.
func (s *Store) CommentCounts() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT blog_post_id, COUNT(*) FROM blog_comments GROUP BY blog_post_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// AddSubscriber records a newsletter signup. A duplicate email returns
// ErrAlreadySubscribed so callers can show the friendlier notice.
func (s *Store) AddSubscriber(email string) (Subscriber, error) {
	sub := Subscriber{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		IsActive:     true,
		SubscribedAt: now(),
	}
	_, err := s.db.Exec(`INSERT INTO subscribers (id, email, is_active, subscribed_at) VALUES (?, ?, 1, ?)`,
		sub.ID, sub.Email, sub.SubscribedAt)
	if isUniqueViolation(err) {
		return Subscriber{}, ErrAlreadySubscribed
	}
	if err != nil {
		return Subscriber{}, err
	}
	return sub, nil
}

// ListSubscribers returns all subscribers, newest signup first.
func (s *Store) ListSubscribers() ([]Subscriber, error) {
	rows, err := s.db.Query(`SELECT id, email, is_active, subscribed_at FROM subscribers ORDER BY subscribed_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []Subscriber
	for rows.Next() {
		var sub Subscriber
		var active int
		if err := rows.Scan(&sub.ID, &sub.Email, &active, &sub.SubscribedAt); err != nil {
			return nil, err
		}
		sub.IsActive = active == 1
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// DeleteSubscriber removes a subscriber row. Returns ErrNotFound if no row matched.
func (s *Store) DeleteSubscriber(id string) error {
	res, err := s.db.Exec(`DELETE FROM subscribers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
