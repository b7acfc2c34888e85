package handler

import (
	"blog/web"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewServer builds the echo instance with the renderer, the error handler
// and every route. Access logging and listening are left to the caller.
func NewServer(h *Handler) (*echo.Echo, error) {
	renderer, err := NewTemplateRegistry(web.Templates)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = ErrorHandler
	e.Use(middleware.Recover())

	e.GET("/", h.Home)
	e.POST("/new_post", h.NewPost)
	e.GET("/post/:post_id", h.GetByID)
	e.GET("/edit/:post_id", h.GetEditPostForm)
	e.GET("/delete/:post_id", h.DeletePost)
	e.POST("/update_post/:post_id", h.UpdatePost)
	e.GET("/posts", h.GetPosts)

	// Same handlers without an id segment, so they answer with their own 404.
	e.GET("/post/", h.GetByID)
	e.GET("/edit/", h.GetEditPostForm)
	e.GET("/delete/", h.DeletePost)
	e.POST("/update_post/", h.UpdatePost)

	e.StaticFS("/static", echo.MustSubFS(web.Static, "static"))

	return e, nil
}
