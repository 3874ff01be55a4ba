package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NavalhaLabs/barber-manager/internal/httperr"
	"github.com/NavalhaLabs/barber-manager/internal/media"
	"github.com/NavalhaLabs/barber-manager/internal/middleware"
	"github.com/NavalhaLabs/barber-manager/internal/models"
	"github.com/NavalhaLabs/barber-manager/internal/storage"
	"github.com/NavalhaLabs/barber-manager/internal/timezone"
)

type BarbershopHandler struct {
	db      *gorm.DB
	storage storage.Uploader // nil quando o bucket não está configurado
}

func NewBarbershopHandler(db *gorm.DB, uploader storage.Uploader) *BarbershopHandler {
	return &BarbershopHandler{db: db, storage: uploader}
}

// Todos os campos são opcionais: só o que vier no corpo é alterado.
type UpdateBarbershopConfigRequest struct {
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`

	AllowCancellation *bool `json:"allow_cancellation"`
	CancelMinHours    *int  `json:"cancel_min_hours"`

	AllowRescheduling       *bool `json:"allow_rescheduling"`
	RescheduleMinHours      *int  `json:"reschedule_min_hours"`
	MaxReschedulesPerPeriod *int  `json:"max_reschedules_per_period"`
	ReschedulePeriodDays    *int  `json:"reschedule_period_days"`
}

func (h *BarbershopHandler) loadShop(c *gin.Context) (*models.Barbershop, bool) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_barbershop", "Erro ao buscar dados da barbearia.")
		return nil, false
	}
	return &shop, true
}

func (h *BarbershopHandler) GetMeBarbershop(c *gin.Context) {
	shop, ok := h.loadShop(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, shop)
}

func (h *BarbershopHandler) UpdateMeBarbershop(c *gin.Context) {
	shop, ok := h.loadShop(c)
	if !ok {
		return
	}

	var req UpdateBarbershopConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Timezone IANA inválido.")
			return
		}
		shop.Timezone = *req.Timezone
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		shop.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if req.AllowCancellation != nil {
		shop.AllowCancellation = *req.AllowCancellation
	}
	if req.CancelMinHours != nil {
		if *req.CancelMinHours < 0 {
			httperr.BadRequest(c, "invalid_cancel_min_hours", "Janela de cancelamento deve ser zero ou positiva (em horas).")
			return
		}
		shop.CancelMinHours = *req.CancelMinHours
	}

	if req.AllowRescheduling != nil {
		shop.AllowRescheduling = *req.AllowRescheduling
	}
	if req.RescheduleMinHours != nil {
		if *req.RescheduleMinHours < 0 {
			httperr.BadRequest(c, "invalid_reschedule_min_hours", "Janela de remarcação deve ser zero ou positiva (em horas).")
			return
		}
		shop.RescheduleMinHours = *req.RescheduleMinHours
	}
	if req.MaxReschedulesPerPeriod != nil {
		if *req.MaxReschedulesPerPeriod < 0 {
			httperr.BadRequest(c, "invalid_reschedule_quota", "Cota de remarcações deve ser zero ou positiva.")
			return
		}
		shop.MaxReschedulesPerPeriod = *req.MaxReschedulesPerPeriod
	}
	if req.ReschedulePeriodDays != nil {
		if *req.ReschedulePeriodDays < 1 {
			httperr.BadRequest(c, "invalid_reschedule_period", "Período da cota deve ser de pelo menos 1 dia.")
			return
		}
		shop.ReschedulePeriodDays = *req.ReschedulePeriodDays
	}

	if err := h.db.Save(shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barbershop", "Erro ao salvar as configurações da barbearia.")
		return
	}

	c.JSON(http.StatusOK, shop)
}

// ======================================================
// LOGO
// ======================================================

const maxLogoBytes = 5 << 20

// UploadLogo recebe multipart, normaliza para webp e publica no bucket.
func (h *BarbershopHandler) UploadLogo(c *gin.Context) {
	if h.storage == nil {
		httperr.Internal(c, "storage_not_configured", "Upload de imagens não está habilitado.")
		return
	}

	shop, ok := h.loadShop(c)
	if !ok {
		return
	}

	file, err := c.FormFile("logo")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo de imagem obrigatório no campo 'logo'.")
		return
	}
	if file.Size > maxLogoBytes {
		httperr.BadRequest(c, "file_too_large", "Imagem acima de 5MB.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Erro ao ler o arquivo enviado.")
		return
	}
	defer src.Close()

	normalized, err := media.NormalizeLogo(src)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedImage) {
			httperr.BadRequest(c, "unsupported_image", "Formato de imagem não suportado.")
			return
		}
		httperr.Internal(c, "failed_to_process_image", "Erro ao processar a imagem.")
		return
	}

	key := fmt.Sprintf("logos/%d/%d.webp", shop.ID, time.Now().Unix())

	url, err := h.storage.Upload(c.Request.Context(), key, normalized, "image/webp")
	if err != nil {
		httperr.Internal(c, "upload_failed", "Erro ao enviar a imagem.")
		return
	}

	shop.LogoURL = url
	if err := h.db.Save(shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barbershop", "Erro ao salvar o logo.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}
