package agrisite

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const visitorCookie = "agrisite_visitor"

// Interactions manages likes, shares, and comments for blog posts. Every
// backend failure here is logged and surfaced once; there are no retries.
type Interactions struct {
	store *Store
	cache *ContentCache
	log   zerolog.Logger
}

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

// ToggleLike flips the visitor's like on a post. Counts only change after the
// store transaction commits; a failure leaves them untouched.
func (it *Interactions) ToggleLike(postID, visitor string) (LikeResult, error) {
	liked, likes, err := it.store.ToggleLike(postID, visitor)
	if err != nil {
		it.log.Error().Err(err).Str("post", postID).Msg("like toggle failed")
		return LikeResult{}, err
	}
	it.cache.Invalidate()
	return LikeResult{Liked: liked, Likes: likes}, nil
}

// Share bumps the post's share counter and returns the new count. The caller
// performs the actual share (or clipboard copy) afterwards; its failure does
// not roll the counter back.
func (it *Interactions) Share(postID string) (int, error) {
	shares, err := it.store.IncrementShares(postID)
	if err != nil {
		it.log.Error().Err(err).Str("post", postID).Msg("share increment failed")
		return 0, err
	}
	it.cache.Invalidate()
	return shares, nil
}

// Comments returns a post's comments, newest first.
func (it *Interactions) Comments(postID string) ([]BlogComment, error) {
	comments, err := it.store.ListComments(postID)
	if err != nil {
		it.log.Error().Err(err).Str("post", postID).Msg("list comments failed")
		return nil, err
	}
	return comments, nil
}

// SubmitComment inserts a comment. Blank name, email, or text is rejected
// before any store call.
func (it *Interactions) SubmitComment(postID, name, email, text string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	text = strings.TrimSpace(text)
	if name == "" || email == "" || text == "" {
		return invalid("please fill in all fields")
	}
	comment := BlogComment{
		BlogPostID:  postID,
		UserName:    name,
		UserEmail:   email,
		CommentText: text,
	}
	if err := it.store.AddComment(&comment); err != nil {
		it.log.Error().Err(err).Str("post", postID).Msg("insert comment failed")
		return err
	}
	it.cache.Invalidate()
	return nil
}

// LikedPosts returns which posts the visitor has liked, for rendering the
// filled-heart state.
func (it *Interactions) LikedPosts(visitor string) map[string]bool {
	liked, err := it.store.LikedPosts(visitor)
	if err != nil {
		it.log.Error().Err(err).Msg("liked posts lookup failed")
		return map[string]bool{}
	}
	return liked
}

// visitorID returns the device pseudo-identity from the visitor cookie,
// minting and setting one on first use. The token is timestamp-based: weak,
// collision-prone identity that is fine for like dedup and nothing
// security-sensitive.
func visitorID(c echo.Context) string {
	if cookie, err := c.Cookie(visitorCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := fmt.Sprintf("visitor_%d", time.Now().UnixNano())
	c.SetCookie(&http.Cookie{
		Name:     visitorCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 365,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
