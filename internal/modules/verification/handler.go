package verification

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"juanride/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const maxDocumentSize = 15 << 20 // 15 MB

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the document endpoints under the protected
// group. Review endpoints additionally need owner or admin role middleware,
// wired by the caller.
func (h *Handler) RegisterRoutes(rg, ownerRG, adminRG *gin.RouterGroup) {
	group := rg.Group("/verification")
	{
		group.POST("/identity", h.UploadIdentity)
		group.GET("/identity", h.ListMyIdentity)
		group.POST("/business", h.UploadBusiness)
		group.GET("/business", h.ListMyBusiness)
	}

	owner := ownerRG.Group("/verification")
	{
		owner.GET("/identity/:id/url", h.IdentityURL)
		owner.POST("/identity/:id/review", h.ReviewIdentity)
	}

	admin := adminRG.Group("/verification")
	{
		admin.GET("/business/pending", h.ListBusinessPending)
		admin.GET("/business/:id/url", h.BusinessURL)
		admin.POST("/business/:id/review", h.ReviewBusiness)
	}
}

type reviewRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason"`
}

func (h *Handler) UploadIdentity(c *gin.Context) {
	h.upload(c, func(c *gin.Context) (any, error) {
		userID := c.GetInt64("user_id")
		file, f, docType, err := h.openUpload(c)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return h.service.UploadIdentity(c.Request.Context(), userID, docType, f, file.Header.Get("Content-Type"))
	})
}

func (h *Handler) UploadBusiness(c *gin.Context) {
	h.upload(c, func(c *gin.Context) (any, error) {
		userID := c.GetInt64("user_id")
		file, f, docType, err := h.openUpload(c)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return h.service.UploadBusiness(c.Request.Context(), userID, docType, f, file.Header.Get("Content-Type"))
	})
}

func (h *Handler) ListMyIdentity(c *gin.Context) {
	userID := c.GetInt64("user_id")

	docs, err := h.service.ListIdentityForSubject(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"documents": docs})
}

func (h *Handler) ListMyBusiness(c *gin.Context) {
	userID := c.GetInt64("user_id")

	docs, err := h.service.ListBusinessForSubject(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"documents": docs})
}

func (h *Handler) ListBusinessPending(c *gin.Context) {
	docs, err := h.service.ListBusinessPending(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"documents": docs})
}

func (h *Handler) IdentityURL(c *gin.Context) {
	id, ok := h.docID(c)
	if !ok {
		return
	}

	url, err := h.service.IdentityDownloadURL(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"url": url})
}

func (h *Handler) BusinessURL(c *gin.Context) {
	id, ok := h.docID(c)
	if !ok {
		return
	}

	url, err := h.service.BusinessDownloadURL(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"url": url})
}

func (h *Handler) ReviewIdentity(c *gin.Context) {
	reviewerID := c.GetInt64("user_id")

	id, ok := h.docID(c)
	if !ok {
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	d, err := h.service.ReviewIdentity(c.Request.Context(), id, reviewerID, req.Approve, req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"document": d})
}

func (h *Handler) ReviewBusiness(c *gin.Context) {
	reviewerID := c.GetInt64("user_id")

	id, ok := h.docID(c)
	if !ok {
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	d, err := h.service.ReviewBusiness(c.Request.Context(), id, reviewerID, req.Approve, req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"document": d})
}

func (h *Handler) upload(c *gin.Context, fn func(c *gin.Context) (any, error)) {
	doc, err := fn(c)
	if err != nil {
		if errors.Is(err, errBadUpload) {
			return // response already written
		}
		response.Error(c, http.StatusInternalServerError, "UPLOAD_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"document": doc})
}

var errBadUpload = errors.New("bad upload")

func (h *Handler) openUpload(c *gin.Context) (*multipart.FileHeader, multipart.File, string, error) {
	docType := c.PostForm("document_type")
	if docType == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "document_type is required")
		return nil, nil, "", errBadUpload
	}

	file, err := c.FormFile("document")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Document file is required")
		return nil, nil, "", errBadUpload
	}
	if file.Size > maxDocumentSize {
		response.Error(c, http.StatusBadRequest, "FILE_TOO_LARGE", "Document must be under 15MB")
		return nil, nil, "", errBadUpload
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPLOAD_ERROR", err.Error())
		return nil, nil, "", errBadUpload
	}
	return file, f, docType, nil
}

func (h *Handler) docID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid document ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Document not found")
	case errors.Is(err, ErrReasonRequired):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rejection reason is required")
	case errors.Is(err, ErrAlreadyDecided):
		response.Error(c, http.StatusConflict, "ALREADY_REVIEWED", "Document has already been reviewed")
	default:
		response.Error(c, http.StatusInternalServerError, "VERIFICATION_ERROR", err.Error())
	}
}
