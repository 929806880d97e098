package server

import (
	"net/http"
	"net/url"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/mohammad-safakhou/capitol/internal/region"
)

// StateSelectForm is the query string of the state picker.
type StateSelectForm struct {
	Abbr string `query:"abbr"`
}

// PagesHandler serves the per-region HTML pages.
type PagesHandler struct {
	Regions *region.Service
}

func (h *PagesHandler) Register(g *echo.Group) {
	g.GET("/state-selection", h.stateSelection).Name = "state_selection"
	g.GET("/:abbr", h.state).Name = "state"
	g.GET("/:abbr/not-active-yet", h.notActiveYet).Name = "state_not_active_yet"
	g.GET("/:abbr/search", h.search).Name = "search"
}

func (h *PagesHandler) stateSelection(c echo.Context) error {
	var form StateSelectForm
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if utf8.RuneCountInString(form.Abbr) != 2 {
		return echo.ErrNotFound
	}
	// The code is a path segment; escape it so "/e" cannot become a host.
	return c.Redirect(http.StatusFound, c.Echo().Reverse("state", url.PathEscape(form.Abbr)))
}

func (h *PagesHandler) state(c echo.Context) error {
	page, err := h.Regions.Dashboard(c.Request().Context(), c.Param("abbr"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "state", page)
}

func (h *PagesHandler) notActiveYet(c echo.Context) error {
	page, err := h.Regions.NotActiveYet(c.Request().Context(), c.Param("abbr"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "state_not_active_yet", page)
}

func (h *PagesHandler) search(c echo.Context) error {
	if !c.QueryParams().Has("q") {
		return echo.NewHTTPError(http.StatusBadRequest, "missing search query")
	}
	page, err := h.Regions.Search(c.Request().Context(), c.Param("abbr"), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "search_results_bills_legislators", page)
}
