package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stockroom/internal/core/apperror"
	"stockroom/internal/domain/audit"
	"stockroom/internal/domain/inventory"
	"stockroom/internal/infrastructure/http/v1/dto"
	"stockroom/internal/render"
)

// MsgValid is returned by the validate endpoint for an acceptable draft.
const MsgValid = "Item is valid."

// ItemHandler handles HTTP requests for inventory items.
type ItemHandler struct {
	*BaseHandler
	service *inventory.Service
	journal *audit.Journal
}

// NewItemHandler creates a new item handler. journal may be nil, in which
// case the history endpoints report empty results.
func NewItemHandler(base *BaseHandler, service *inventory.Service, journal *audit.Journal) *ItemHandler {
	return &ItemHandler{
		BaseHandler: base,
		service:     service,
		journal:     journal,
	}
}

// List returns all, popular or matching items.
// GET /items?search=&popular=&format=
func (h *ItemHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.ListItemsQuery
	if !h.BindQuery(c, &q) {
		return
	}

	var items []inventory.Item
	switch {
	case q.Search != "":
		items = h.service.SearchByName(ctx, q.Search)
		if q.Popular {
			items = popularOnly(items)
		}
	case q.Popular:
		items = h.service.ListPopular(ctx)
	default:
		items = h.service.ListAll(ctx)
	}

	if q.Format == "html" {
		h.HTML(c, render.HTML(items))
		return
	}
	h.OK(c, dto.NewListResponse(dto.FromItems(items)))
}

func popularOnly(items []inventory.Item) []inventory.Item {
	out := items[:0]
	for _, item := range items {
		if item.Popular {
			out = append(out, item)
		}
	}
	return out
}

// Get finds an item by name.
// GET /items/by-name/:name
func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.service.FindByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromItem(item))
}

// Create adds an item.
// POST /items
func (h *ItemHandler) Create(c *gin.Context) {
	draft, ok := h.bindDraft(c)
	if !ok {
		return
	}

	if err := h.service.Add(c.Request.Context(), draft); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, inventory.MsgAdded)
}

// Update replaces the item currently named :name.
// PUT /items/by-name/:name
func (h *ItemHandler) Update(c *gin.Context) {
	draft, ok := h.bindDraft(c)
	if !ok {
		return
	}

	if err := h.service.UpdateByName(c.Request.Context(), c.Param("name"), draft); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, inventory.MsgUpdated)
}

// Delete removes the item named :name. The request must carry confirm=true;
// an explicit confirm=false is reported as a cancelled deletion.
// DELETE /items/by-name/:name?confirm=true
func (h *ItemHandler) Delete(c *gin.Context) {
	confirmed := false
	if raw, present := c.GetQuery("confirm"); present {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.Error(c, apperror.NewInvalidInput("invalid confirm flag").WithDetail("value", raw))
			return
		}
		if !v {
			c.JSON(http.StatusOK, dto.SuccessResponse{Success: false, Message: inventory.MsgCancelled})
			return
		}
		confirmed = v
	}

	if err := h.service.DeleteByName(c.Request.Context(), c.Param("name"), confirmed); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, inventory.MsgDeleted)
}

// Validate checks a draft without storing it.
// POST /items/validate
func (h *ItemHandler) Validate(c *gin.Context) {
	draft, ok := h.bindDraft(c)
	if !ok {
		return
	}

	if err := h.service.Validate(c.Request.Context(), draft); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, MsgValid)
}

// History returns the newest journal entries across all items.
// GET /items/history?limit=
func (h *ItemHandler) History(c *gin.Context) {
	if h.journal == nil {
		h.OK(c, dto.NewListResponse([]dto.AuditEntryResponse{}))
		return
	}

	entries, err := h.journal.Entries(h.ParseIntQuery(c, "limit", 50))
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}
	h.respondHistory(c, entries)
}

// ItemHistory returns journal entries for the item currently named :name.
// GET /items/by-name/:name/history?limit=
func (h *ItemHandler) ItemHistory(c *gin.Context) {
	item, err := h.service.FindByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.Error(c, err)
		return
	}
	if h.journal == nil {
		h.OK(c, dto.NewListResponse([]dto.AuditEntryResponse{}))
		return
	}

	entries, err := h.journal.History(item.ID, h.ParseIntQuery(c, "limit", 50))
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}
	h.respondHistory(c, entries)
}

func (h *ItemHandler) respondHistory(c *gin.Context, entries []audit.Entry) {
	resp, err := dto.FromAuditEntries(entries)
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}
	h.OK(c, dto.NewListResponse(resp))
}

func (h *ItemHandler) bindDraft(c *gin.Context) (inventory.Draft, bool) {
	var req dto.ItemRequest
	if !h.BindJSON(c, &req) {
		return inventory.Draft{}, false
	}

	draft, err := req.ToDraft()
	if err != nil {
		h.Error(c, err)
		return inventory.Draft{}, false
	}
	return draft, true
}
