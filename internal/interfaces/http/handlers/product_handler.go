package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/warrify/internal/application/product"
	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/pkg/errors"
)

// InvoiceFormField is the multipart field carrying an invoice upload.
const InvoiceFormField = "invoice"

// multipartOverhead is the body allowance above the file size for headers
// and boundaries.
const multipartOverhead = 64 << 10

type ProductHandler struct {
	service   product.Service
	maxUpload int64
	logger    logging.Logger
}

// NewProductHandler builds the handler. maxUpload caps invoice files; zero
// means product.DefaultMaxUploadSize.
func NewProductHandler(service product.Service, maxUpload int64, log logging.Logger) *ProductHandler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if maxUpload <= 0 {
		maxUpload = product.DefaultMaxUploadSize
	}
	return &ProductHandler{service: service, maxUpload: maxUpload, logger: log}
}

// List handles GET /api/products?search=&category=&dateFrom=&dateTo=&expiringSoon=true.
func (h *ProductHandler) List(c *gin.Context) {
	filter := warranty.ProductFilter{
		Search:       strings.TrimSpace(c.Query("search")),
		Category:     c.Query("category"),
		ExpiringSoon: c.Query("expiringSoon") == "true",
	}
	var err error
	if filter.DateFrom, err = optionalDate(c.Query("dateFrom")); err != nil {
		respondError(c, h.logger, errors.InvalidParam("dateFrom must be YYYY-MM-DD"))
		return
	}
	if filter.DateTo, err = optionalDate(c.Query("dateTo")); err != nil {
		respondError(c, h.logger, errors.InvalidParam("dateTo must be YYYY-MM-DD"))
		return
	}

	products, err := h.service.List(c.Request.Context(), callerFrom(c).ID, filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(products))
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req product.CreateRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.service.Create(c.Request.Context(), callerFrom(c).ID, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.service.Get(c.Request.Context(), callerFrom(c).ID, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Update applies a partial update; absent fields keep their stored values.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch warranty.ProductPatch
	if !bindJSON(c, &patch) {
		return
	}
	p, err := h.service.Update(c.Request.Context(), callerFrom(c).ID, id, patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), callerFrom(c).ID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// CheckInvoice handles GET /api/products/check-invoice?invoiceNumber=.
func (h *ProductHandler) CheckInvoice(c *gin.Context) {
	res, err := h.service.CheckInvoice(c.Request.Context(), callerFrom(c).ID, c.Query("invoiceNumber"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ProductHandler) UpcomingExpiring(c *gin.Context) {
	products, err := h.service.UpcomingExpiring(c.Request.Context(), callerFrom(c).ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(products))
}

func (h *ProductHandler) RiskAssessment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, err := h.service.RiskAssessment(c.Request.Context(), callerFrom(c).ID, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// UploadInvoice handles the multipart POST /api/upload/invoice.
func (h *ProductHandler) UploadInvoice(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+multipartOverhead)
	fh, err := c.FormFile(InvoiceFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			respondError(c, h.logger, product.ErrFileTooLarge)
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			respondError(c, h.logger, product.ErrNoFile)
		default:
			respondError(c, h.logger, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid upload"))
		}
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, h.logger, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid upload"))
		return
	}
	defer f.Close()

	res, err := h.service.UploadInvoice(c.Request.Context(), callerFrom(c).ID, product.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Invoice redirects GET /api/invoices/*key to a short-lived download URL.
func (h *ProductHandler) Invoice(c *gin.Context) {
	url, err := h.service.InvoiceURL(c.Request.Context(), callerFrom(c).ID, c.Param("key"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

func optionalDate(s string) (warranty.Date, error) {
	if strings.TrimSpace(s) == "" {
		return warranty.Date{}, nil
	}
	return warranty.ParseDate(s)
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil(ps []*warranty.Product) []*warranty.Product {
	if ps == nil {
		return []*warranty.Product{}
	}
	return ps
}
