package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"offers-service/internal/domain/offer"
	"offers-service/internal/handler/dto"
	reqdto "offers-service/internal/handler/dto/request"
	resdto "offers-service/internal/handler/dto/response"
	"offers-service/internal/handler/httperr"
	"offers-service/internal/usecase/commands"
	"offers-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OfferHandler struct {
	cmds commands.OfferCommands
	q    queries.OfferQueries
}

func NewOfferHandler(cmds commands.OfferCommands, q queries.OfferQueries) *OfferHandler {
	return &OfferHandler{cmds: cmds, q: q}
}

// @Summary Create offer
// @Description Create a new offer; the response carries the derived expired flag
// @Tags offers
// @Accept json
// @Produce json
// @Param request body reqdto.CreateOfferRequest true "Create offer request"
// @Success 201 {object} resdto.OfferResponse
// @Failure 400 {object} map[string]string
// @Router /offers [post]
func (h *OfferHandler) Create(c *gin.Context) {
	var req reqdto.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	created, err := h.cmds.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Create offer failed", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromOffer(created))
}

// @Summary Get offer
// @Description Get an active offer by ID with its derived expired flag
// @Tags offers
// @Produce json
// @Param id path string true "Offer ID"
// @Success 200 {object} resdto.OfferResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /offers/{id} [get]
func (h *OfferHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	o, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrOfferNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load offer", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOffer(o))
}

// @Summary Search offers
// @Description Search active offers; every filter is optional and filters conjoin
// @Tags offers
// @Produce json
// @Param description query string false "Substring match on description"
// @Param currency query string false "Exact currency code"
// @Param priceStart query number false "Minimum price (inclusive)"
// @Param priceEnd query number false "Maximum price (inclusive)"
// @Param expirationDateStart query string false "Earliest expiration date (dd-MM-yyyy)"
// @Param expirationDateEnd query string false "Latest expiration date (dd-MM-yyyy)"
// @Success 200 {array} resdto.OfferResponse
// @Failure 400 {object} map[string]string
// @Router /offers [get]
func (h *OfferHandler) Search(c *gin.Context) {
	search, err := searchFromQueryParams(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid search parameter", nil)
		return
	}
	found, err := h.q.Search(c.Request.Context(), search)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Search failed", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOffers(found))
}

// @Summary Cancel offer
// @Description Cancel an offer; cancelled offers disappear from all reads
// @Tags offers
// @Produce plain
// @Param id path string true "Offer ID"
// @Success 200 {string} string "OK"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /offers/{id} [delete]
func (h *OfferHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.cmds.Cancel(c.Request.Context(), id); err != nil {
		if errors.Is(err, commands.ErrOfferNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Cancel failed", nil)
		return
	}
	c.String(http.StatusOK, "OK")
}

// searchFromQueryParams builds the search value object; an absent param leaves
// its dimension unconstrained.
func searchFromQueryParams(c *gin.Context) (offer.Search, error) {
	var s offer.Search

	if v := c.Query("description"); v != "" {
		s.Description = &v
	}
	if v := c.Query("currency"); v != "" {
		s.Currency = &v
	}

	var err error
	if s.PriceStart, err = floatParam(c, "priceStart"); err != nil {
		return offer.Search{}, err
	}
	if s.PriceEnd, err = floatParam(c, "priceEnd"); err != nil {
		return offer.Search{}, err
	}
	if s.DateStart, err = dateParam(c, "expirationDateStart"); err != nil {
		return offer.Search{}, err
	}
	if s.DateEnd, err = dateParam(c, "expirationDateEnd"); err != nil {
		return offer.Search{}, err
	}
	return s, nil
}

func floatParam(c *gin.Context, name string) (*float64, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func dateParam(c *gin.Context, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
