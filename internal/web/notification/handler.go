package notification

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"time"

	"gitee.com/flycash/mece-notification/internal/domain"
	"gitee.com/flycash/mece-notification/internal/errs"
	notificationsvc "gitee.com/flycash/mece-notification/internal/service/notification"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

const (
	codeOK           = 0
	codeInvalidInput = 400001
	codeInvariant    = 400002
	codeSystemError  = 500001
)

type Handler struct {
	svc       notificationsvc.Service
	languages []domain.Language
	timezone  *time.Location
	logger    *elog.Component
}

func NewHandler(svc notificationsvc.Service, languages []domain.Language, timezone *time.Location) *Handler {
	return &Handler{
		svc:       svc,
		languages: languages,
		timezone:  timezone,
		logger:    elog.DefaultLogger,
	}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/notifications")
	g.POST("", h.Submit)
	g.POST("/preview", h.Preview)
}

func (h *Handler) Submit(ctx *gin.Context) {
	msg, ok := h.bind(ctx)
	if !ok {
		return
	}
	receipt, err := h.svc.Submit(ctx.Request.Context(), msg)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, Result{
		Code: codeOK,
		Msg:  "OK",
		Data: SubmitResp{
			ID:      receipt.ID,
			Topic:   receipt.Topic,
			Payload: receipt.Payload,
		},
	})
}

// Preview 直接返回导出的 JSON
func (h *Handler) Preview(ctx *gin.Context) {
	msg, ok := h.bind(ctx)
	if !ok {
		return
	}
	payload, err := h.svc.Preview(ctx.Request.Context(), msg)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "application/json; charset=utf-8", []byte(payload))
}

func (h *Handler) bind(ctx *gin.Context) (*domain.NotificationMessage, bool) {
	var req SubmitReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.fail(ctx, fmt.Errorf("%w: %w", errs.ErrInvalidParameter, err))
		return nil, false
	}
	msg, err := h.toDomain(req)
	if err != nil {
		h.fail(ctx, err)
		return nil, false
	}
	return msg, true
}

func (h *Handler) toDomain(req SubmitReq) (*domain.NotificationMessage, error) {
	msg, err := domain.NewNotificationMessage(req.Recipients, req.Source,
		domain.WithRequiredTimezone(h.timezone))
	if err != nil {
		return nil, err
	}

	if req.Priority != nil {
		if err = msg.SetStringProperty(domain.PropertyPriority, req.Priority); err != nil {
			return nil, err
		}
	}
	if req.SourceID != nil {
		if err = msg.SetStringProperty(domain.PropertySourceID, req.SourceID); err != nil {
			return nil, err
		}
	}
	if req.AvatarImageURL != nil {
		if err = msg.SetStringProperty(domain.PropertyAvatarImageURL, req.AvatarImageURL); err != nil {
			return nil, err
		}
	}

	if err = h.setSchedule(msg, req); err != nil {
		return nil, err
	}

	texts := []struct {
		values map[string]any
		set    func(*domain.MultilingualText)
	}{
		{values: req.Heading, set: msg.SetHeading},
		{values: req.Message, set: msg.SetBody},
		{values: req.LinkText, set: msg.SetLinkText},
		{values: req.LinkURL, set: msg.SetLinkURL},
	}
	for _, t := range texts {
		if t.values == nil {
			continue
		}
		text, er := h.toMultilingualText(t.values)
		if er != nil {
			return nil, er
		}
		t.set(text)
	}
	return msg, nil
}

// setSchedule 未提供的时间保持默认值（当前时间）
func (h *Handler) setSchedule(msg *domain.NotificationMessage, req SubmitReq) error {
	submitted, err := h.parseTime(domain.PropertySubmitted, req.Submitted, msg.Submitted())
	if err != nil {
		return err
	}
	deadline, err := h.parseTime(domain.PropertyDeadline, req.Deadline, msg.Deadline())
	if err != nil {
		return err
	}
	expiration, err := h.parseTime(domain.PropertyExpiration, req.Expiration, msg.Expiration())
	if err != nil {
		return err
	}
	return msg.SetSchedule(submitted, deadline, expiration)
}

func (h *Handler) parseTime(property, value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	t, err := time.ParseInLocation(time.RFC3339, value, h.timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s = %q", errs.ErrInvalidInput, property, value)
	}
	// RFC 3339 只带偏移量，不带时区名。偏移量一致时归到要求的时区，不一致的交给领域对象拒绝
	_, offset := t.Zone()
	if _, want := t.In(h.timezone).Zone(); offset == want {
		t = t.In(h.timezone)
	}
	return t, nil
}

func (h *Handler) toMultilingualText(values map[string]any) (*domain.MultilingualText, error) {
	text := domain.NewMultilingualText(domain.WithSupportedLanguages(h.languages...))
	// 排序保证同样的输入总是报告同一个错误
	for _, lang := range slices.Sorted(maps.Keys(values)) {
		if err := text.SetRawValue(values[lang], domain.Language(lang)); err != nil {
			return nil, err
		}
	}
	return text, nil
}

func (h *Handler) fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidInput), errors.Is(err, errs.ErrInvalidParameter):
		ctx.JSON(http.StatusBadRequest, Result{Code: codeInvalidInput, Msg: err.Error()})
	case errors.Is(err, errs.ErrInvariantViolation):
		ctx.JSON(http.StatusBadRequest, Result{Code: codeInvariant, Msg: err.Error()})
	default:
		h.logger.Error("处理通知消息请求失败", elog.FieldErr(err), elog.String("path", ctx.FullPath()))
		ctx.JSON(http.StatusInternalServerError, Result{Code: codeSystemError, Msg: "系统错误"})
	}
}
