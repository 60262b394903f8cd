package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/flakonuz/catalog-backend/internal/config"
	"github.com/flakonuz/catalog-backend/internal/model"
	"github.com/flakonuz/catalog-backend/internal/repository"
	"github.com/flakonuz/catalog-backend/internal/service"
)

// CompanyHandler serves the about section: settings, company news,
// dashboard statistics, the feedback relay and the catalog PDF.
type CompanyHandler struct {
	Cfg      config.Config
	News     repository.ContentRepository
	Settings repository.ContentRepository
	Images   repository.ImageRepository
	Events   service.EventPublisher

	// Counts maps statistic keys to the repositories that back them.
	Counts map[string]repository.ContentRepository

	// TelegramAPI is overridable in tests; defaults to the public endpoint.
	TelegramAPI string
	HTTPClient  *http.Client
}

func NewCompanyHandler(
	cfg config.Config,
	news, settings repository.ContentRepository,
	images repository.ImageRepository,
	events service.EventPublisher,
	counts map[string]repository.ContentRepository,
) *CompanyHandler {
	if news == nil || settings == nil || images == nil {
		panic("nil repository passed to NewCompanyHandler")
	}
	return &CompanyHandler{
		Cfg:         cfg,
		News:        news,
		Settings:    settings,
		Images:      images,
		Events:      events,
		Counts:      counts,
		TelegramAPI: "https://api.telegram.org",
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// GetSettings handles GET /api/about. The catalog blob never leaves the
// server; the Settings model drops it on marshal.
func (h *CompanyHandler) GetSettings(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	docs, err := h.Settings.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in getting settings. Try again later!"})
	}
	if len(docs) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Settings not found!"})
	}

	settings := docs[0]
	delete(settings, "catalogPDF")
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/about/update/:id where the path parameter
// carries "<id>&type=general" or "<id>&type=social". Each type updates its
// own slice of the settings document.
func (h *CompanyHandler) UpdateSettings(c echo.Context) error {
	settingsID, kind := splitSettingsParam(c.Param("id"))

	var data bson.M
	switch kind {
	case "general":
		addressEn := c.FormValue("addressEn")
		addressRu := c.FormValue("addressRu")
		addressUz := c.FormValue("addressUz")
		mailEn := c.FormValue("mailEn")
		mailRu := c.FormValue("mailRu")
		phone1 := c.FormValue("phone1")
		phone2 := c.FormValue("phone2")
		videoLink := c.FormValue("videoLink")
		if addressEn == "" || addressRu == "" || addressUz == "" || mailEn == "" || mailRu == "" || phone1 == "" || phone2 == "" || videoLink == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Params are required!"})
		}
		data = bson.M{
			"addressName": model.LocalizedText{En: addressEn, Ru: addressRu, Uz: addressUz},
			"gmail":       model.MailPair{En: mailEn, Ru: mailRu},
			"phone":       []string{phone1, phone2},
			"videoLink":   videoLink,
		}
	case "social":
		telegram := c.FormValue("telegram")
		instagram := c.FormValue("instagram")
		website := c.FormValue("website")
		youtube := c.FormValue("youtube")
		if telegram == "" || instagram == "" || website == "" || youtube == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Params are required!"})
		}
		data = bson.M{
			"telegram":  telegram,
			"instagram": instagram,
			"website":   website,
			"youtube":   youtube,
		}
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Params are required!"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Settings.Update(ctx, settingsID, data); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Settings not updated!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in updating settings!"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Settings successfully updated!", "data": data})
}

// splitSettingsParam separates the settings id from the update type in the
// combined path parameter.
func splitSettingsParam(param string) (id, kind string) {
	id, kind, _ = strings.Cut(param, "&type=")
	return id, kind
}

// Statistics handles GET /api/about/statistics with document counts for the
// admin dashboard.
func (h *CompanyHandler) Statistics(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	stats := echo.Map{"id": uuid.NewString()}
	for key, repo := range h.Counts {
		n, err := repo.Count(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in getting statistics. Try again later!"})
		}
		stats[key] = n
	}

	return c.JSON(http.StatusOK, stats)
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	ParseMode string `json:"parse_mode"`
	Text      string `json:"text"`
}

type telegramResult struct {
	OK bool `json:"ok"`
}

// Feedback handles POST /api/about/feedback, relaying the visitor's message
// to the company Telegram chat.
func (h *CompanyHandler) Feedback(c echo.Context) error {
	name := c.FormValue("name")
	mail := c.FormValue("mail")
	message := c.FormValue("message")
	if name == "" || mail == "" || message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name, mail, message params are required!"})
	}

	text := fmt.Sprintf("<b>Имя: </b> %s \n \n<b>E-mail: </b> %s \n \n<b>Сообщение: </b> %s", name, mail, message)
	body, err := json.Marshal(telegramMessage{ChatID: h.Cfg.TelegramChatID, ParseMode: "html", Text: text})
	if err != nil {
		return h.feedbackFailed(c)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", h.TelegramAPI, h.Cfg.TelegramToken)
	req, err := http.NewRequestWithContext(c.Request().Context(), http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return h.feedbackFailed(c)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.HTTPClient.Do(req)
	if err != nil {
		return h.feedbackFailed(c)
	}
	defer func() { _ = resp.Body.Close() }()

	var result telegramResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || !result.OK {
		return h.feedbackFailed(c)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"message_en": "Message sent successfully!",
		"message_ru": "Сообщение успешно отправлено!",
		"message_uz": "Xabar muvofaqiyatli yuborildi!",
	})
}

func (h *CompanyHandler) feedbackFailed(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"success":    false,
		"message_en": "Message could not be sent, please try again later!",
		"message_ru": "Не удалось отправить сообщение. Повторите попытку позже!",
		"message_uz": "Xabar yuborilmadi, birozdan so'ng qayta urinib ko'ring!",
	})
}

// CatalogPDF handles GET /api/about/catalog, streaming the product catalog
// from the upload directory.
func (h *CompanyHandler) CatalogPDF(c echo.Context) error {
	path := filepath.Join(h.Cfg.UploadDir, "catalog.pdf")
	if _, err := os.Stat(path); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "File not found"})
	}
	return c.Inline(path, "catalog.pdf")
}
