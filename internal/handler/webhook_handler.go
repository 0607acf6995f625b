package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 決済プロバイダからの通知。認証は署名のみ（JWTは通さない）
type WebhookHandler struct {
	uc *usecase.WebhookUsecase
}

// DI
func NewWebhookHandler(uc *usecase.WebhookUsecase) *WebhookHandler {
	return &WebhookHandler{uc: uc}
}

type WebhookRequest struct {
	ProviderRef string         `json:"provider_ref"`
	Status      string         `json:"status"`
	Signature   string         `json:"signature"`
	RawData     map[string]any `json:"raw_data"`
}

func (h *WebhookHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/payments/webhook", h.handle)
}

func (h *WebhookHandler) handle(c echo.Context) error {
	var req WebhookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.HandleWebhook(c.Request().Context(), usecase.WebhookInput{
		ProviderRef: req.ProviderRef,
		Status:      req.Status,
		Signature:   req.Signature,
		RawData:     req.RawData,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
