package handler

import (
	"time"

	"blog/domain"
)

const DefaultPageTitle = "Simple blogging app"

type Handler struct {
	Store     domain.PostStore
	PageTitle string
	// Now stamps created and updated posts. Defaults to time.Now in UTC,
	// truncated to milliseconds since that is all MongoDB stores.
	Now func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (h *Handler) pageTitle() string {
	if h.PageTitle == "" {
		return DefaultPageTitle
	}
	return h.PageTitle
}
