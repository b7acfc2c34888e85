package handler

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"blog/domain"

	"github.com/labstack/echo/v4"
)

type HomeDTO struct {
	PageTitle string
}

type PostDTO struct {
	PageTitle string
	ID        string
	Title     string
	Body      template.HTML
	Date      time.Time
}

type EditPostDTO struct {
	PageTitle string
	ID        string
	Title     string
	Body      string
}

type PostSummaryDTO struct {
	ID      string
	Title   string
	Excerpt string
	Date    time.Time
}

type PostsDTO struct {
	PageTitle string
	Posts     []PostSummaryDTO
}

func postURL(id string) string {
	return "/post/" + url.PathEscape(id)
}

func (h *Handler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home.html", HomeDTO{PageTitle: h.pageTitle()})
}

func (h *Handler) NewPost(c echo.Context) error {
	p := domain.Post{
		Title: c.FormValue("post_title"),
		Body:  c.FormValue("post_body"),
		Date:  h.now(),
	}
	if err := h.Store.Create(c.Request().Context(), &p); err != nil {
		return fmt.Errorf("error creating post: %w", err)
	}
	c.Logger().Infof("post %s inserted", p.ID)

	return c.Redirect(http.StatusFound, postURL(p.ID))
}

func (h *Handler) GetByID(c echo.Context) error {
	id := c.Param("post_id")
	if id == "" {
		return domain.ErrPostNotFound
	}

	p, err := h.Store.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "post.html", PostDTO{
		PageTitle: h.pageTitle(),
		ID:        p.ID,
		Title:     p.Title,
		Body:      safeMd(p.Body),
		Date:      p.Date,
	})
}

func (h *Handler) DeletePost(c echo.Context) error {
	id := c.Param("post_id")
	if id == "" {
		return domain.ErrPostNotFound
	}

	if err := h.Store.Delete(c.Request().Context(), id); err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}
	c.Logger().Infof("post %s deleted", id)

	return c.Redirect(http.StatusFound, "/posts")
}

func (h *Handler) GetEditPostForm(c echo.Context) error {
	id := c.Param("post_id")
	if id == "" {
		return domain.ErrPostNotFound
	}

	p, err := h.Store.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "edit_post.html", EditPostDTO{
		PageTitle: h.pageTitle(),
		ID:        p.ID,
		Title:     p.Title,
		Body:      p.Body,
	})
}

func (h *Handler) UpdatePost(c echo.Context) error {
	id := c.Param("post_id")
	if id == "" {
		return domain.ErrPostNotFound
	}

	p := domain.Post{
		ID:    id,
		Title: c.FormValue("post_title"),
		Body:  c.FormValue("post_body"),
		Date:  h.now(),
	}
	if err := h.Store.Update(c.Request().Context(), p); err != nil {
		return fmt.Errorf("error updating post: %w", err)
	}
	c.Logger().Infof("post %s updated", id)

	return c.Redirect(http.StatusFound, postURL(id))
}

func (h *Handler) GetPosts(c echo.Context) error {
	posts, err := h.Store.List(c.Request().Context())
	if err != nil {
		return fmt.Errorf("error listing posts: %w", err)
	}

	summaries := make([]PostSummaryDTO, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, PostSummaryDTO{
			ID:      p.ID,
			Title:   p.Title,
			Excerpt: excerpt(p.Body),
			Date:    p.Date,
		})
	}

	return c.Render(http.StatusOK, "posts.html", PostsDTO{
		PageTitle: h.pageTitle(),
		Posts:     summaries,
	})
}
