// Package httpapi exposes the feeds and listing actions over HTTP.
package httpapi

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/foodbridge/internal/export"
	"github.com/UnknownOlympus/foodbridge/internal/feed"
	"github.com/UnknownOlympus/foodbridge/internal/geo"
	"github.com/UnknownOlympus/foodbridge/internal/models"
	"github.com/UnknownOlympus/foodbridge/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Feeds is what the API needs from the feed service.
type Feeds interface {
	Home(ctx context.Context, kind models.Kind, q feed.Query) (feed.Page, error)
	Donations(ctx context.Context, q feed.Query) (feed.Page, error)
	Requests(ctx context.Context, q feed.Query) (feed.Page, error)
	Volunteer(ctx context.Context, q feed.Query) (feed.Page, error)
	Export(ctx context.Context, view feed.View, q feed.Query) ([]feed.Item, error)
	Owned(ctx context.Context, kind models.Kind, ownerID int64, q feed.Query) (feed.OwnedPage, error)
	Orders(ctx context.Context, kind models.Kind, ownerID int64, q feed.Query) (feed.Page, error)
	RequestDonation(ctx context.Context, sess session.Session, id int64) (*models.Listing, error)
	DonateToRequest(ctx context.Context, sess session.Session, id int64) (*models.Listing, error)
	AcceptDelivery(ctx context.Context, sess session.Session, kind models.Kind, id int64) (*models.Listing, error)
	Delete(ctx context.Context, sess session.Session, kind models.Kind, id int64) error
}

// Pinger reports whether the read-model database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type handler struct {
	feeds Feeds
	db    Pinger
	log   *slog.Logger
}

// NewRouter wires the API, health and metrics endpoints.
func NewRouter(feeds Feeds, db Pinger, reg prometheus.Gatherer, log *slog.Logger) *gin.Engine {
	h := &handler{feeds: feeds, db: db, log: log}

	router := gin.New()
	router.Use(requestID(), recovery(log), requestLogger(log))

	router.GET("/healthz", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1", identify())
	{
		v1.GET("/feed/home", h.home)
		v1.GET("/feed/donations", h.page(h.feeds.Donations))
		v1.GET("/feed/requests", h.page(h.feeds.Requests))
		v1.GET("/feed/volunteer", h.page(h.feeds.Volunteer))
		v1.GET("/feed/export.xlsx", h.export)

		v1.GET("/donors/:id/donations", h.owned(models.KindDonation))
		v1.GET("/recipients/:id/requests", h.owned(models.KindRequest))
		v1.GET("/donors/:id/orders", h.orders(models.KindDonation))
		v1.GET("/recipients/:id/orders", h.orders(models.KindRequest))

		v1.POST("/donations/:id/request", h.requestDonation)
		v1.POST("/requests/:id/donate", h.donateToRequest)
		v1.POST("/listings/:kind/:id/accept", h.acceptDelivery)
		v1.DELETE("/listings/:kind/:id", h.deleteListing)

		v1.GET("/distance", h.distance)
	}

	return router
}

func (h *handler) health(c *gin.Context) {
	ctx := c.Request.Context()
	h.log.DebugContext(ctx, "Performing health checks...")
	if err := h.db.Ping(ctx); err != nil {
		h.log.ErrorContext(ctx, "Health check failed", "error", err)
		c.String(http.StatusServiceUnavailable, "DB ping failed")
		return
	}
	c.String(http.StatusOK, "OK")
}

func (h *handler) home(c *gin.Context) {
	q, err := feedQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	kind, err := parseKind(c.DefaultQuery("kind", string(models.KindDonation)))
	if err != nil {
		h.fail(c, err)
		return
	}

	page, err := h.feeds.Home(c.Request.Context(), kind, q)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *handler) page(view func(context.Context, feed.Query) (feed.Page, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := feedQuery(c)
		if err != nil {
			h.fail(c, err)
			return
		}

		page, err := view(c.Request.Context(), q)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

func (h *handler) export(c *gin.Context) {
	q, err := feedQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	view := feed.View(c.DefaultQuery("view", string(feed.ViewHome)))

	items, err := h.feeds.Export(c.Request.Context(), view, q)
	if err != nil {
		h.fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err = export.WriteFeed(&buf, items); err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="foodbridge-`+string(view)+`.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ownerRoles names the role allowed to read an owner's lists besides admins.
var ownerRoles = map[models.Kind]session.Role{
	models.KindDonation: session.RoleDonor,
	models.KindRequest:  session.RoleRecipient,
}

// authorizeOwner lets owners read their own lists and admins read anyone's.
func authorizeOwner(sess session.Session, kind models.Kind, ownerID int64) error {
	if !sess.LoggedIn() {
		return feed.ErrUnauthenticated
	}
	if sess.Role == session.RoleAdmin || (sess.Role == ownerRoles[kind] && sess.RoleID == ownerID) {
		return nil
	}
	return feed.ErrForbidden
}

func (h *handler) owned(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, q, err := h.ownerRequest(c, kind)
		if err != nil {
			h.fail(c, err)
			return
		}

		page, err := h.feeds.Owned(c.Request.Context(), kind, ownerID, q)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

func (h *handler) orders(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, q, err := h.ownerRequest(c, kind)
		if err != nil {
			h.fail(c, err)
			return
		}

		page, err := h.feeds.Orders(c.Request.Context(), kind, ownerID, q)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

func (h *handler) ownerRequest(c *gin.Context, kind models.Kind) (int64, feed.Query, error) {
	ownerID, err := pathID(c)
	if err != nil {
		return 0, feed.Query{}, err
	}
	if err = authorizeOwner(session.FromContext(c.Request.Context()), kind, ownerID); err != nil {
		return 0, feed.Query{}, err
	}
	q, err := feedQuery(c)
	return ownerID, q, err
}

func (h *handler) requestDonation(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	listing, err := h.feeds.RequestDonation(ctx, session.FromContext(ctx), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *handler) donateToRequest(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	listing, err := h.feeds.DonateToRequest(ctx, session.FromContext(ctx), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *handler) acceptDelivery(c *gin.Context) {
	kind, err := parseKind(c.Param("kind"))
	if err != nil {
		h.fail(c, err)
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	listing, err := h.feeds.AcceptDelivery(ctx, session.FromContext(ctx), kind, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *handler) deleteListing(c *gin.Context) {
	kind, err := parseKind(c.Param("kind"))
	if err != nil {
		h.fail(c, err)
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	if err = h.feeds.Delete(ctx, session.FromContext(ctx), kind, id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type distanceResponse struct {
	DistanceKm *float64 `json:"distance_km"`
	Label      string   `json:"label"`
}

// distance measures between two points. Either end missing gives a null distance, not an error.
func (h *handler) distance(c *gin.Context) {
	from := parsePoint(c.Query("from_lat"), c.Query("from_lon"))
	to := parsePoint(c.Query("to_lat"), c.Query("to_lon"))

	var resp distanceResponse
	if km, ok := geo.Distance(from, to); ok {
		resp.DistanceKm = &km
		resp.Label = geo.FormatDistance(km)
	}
	c.JSON(http.StatusOK, resp)
}
