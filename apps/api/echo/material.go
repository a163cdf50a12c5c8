package echoapi

import (
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/prepclass/core"
	"github.com/trezcool/prepclass/core/material"
	"github.com/trezcool/prepclass/core/user"
	"github.com/trezcool/prepclass/services/export"
)

type materialApi struct {
	svc      *material.Service
	usrSvc   *user.Service
	emailSvc core.EmailService
}

func registerMaterialAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *material.Service,
	usrSvc *user.Service,
	emailSvc core.EmailService,
) {
	api := materialApi{
		svc:      svc,
		usrSvc:   usrSvc,
		emailSvc: emailSvc,
	}

	// all endpoints require auth
	mg := g.Group("/materials", jwt)

	mg.POST("", api.generate)
	mg.GET("", api.history)
	mg.DELETE("", api.clear)
	mg.GET("/history.json", api.downloadHistory)

	dg := mg.Group("/:topic")
	dg.GET("", api.retrieve)
	dg.POST("/share", api.share)
	dg.GET("/:doc/pdf", api.downloadPDF)
	dg.GET("/:doc/markdown", api.downloadMarkdown)
}

// Handlers

func (api *materialApi) generate(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data GenerateRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GenerateRequest")
	}
	level, err := data.Validate()
	if err != nil {
		return err
	}

	rec, err := api.svc.Generate(ctx.Request().Context(), claims.Username, data.Topic, level)
	if err != nil {
		return errors.Wrap(err, "generating materials")
	}
	return ctx.JSON(http.StatusCreated, rec)
}

func (api *materialApi) history(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	recs, err := api.svc.History(ctx.Request().Context(), claims.Username)
	if err != nil {
		return errors.Wrap(err, "querying history")
	}
	if recs == nil {
		recs = []material.Record{}
	}
	return ctx.JSON(http.StatusOK, recs)
}

func (api *materialApi) clear(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Clear(ctx.Request().Context(), claims.Username); err != nil {
		return errors.Wrap(err, "clearing history")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *materialApi) downloadHistory(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	history, err := api.svc.HistoryMap(ctx.Request().Context(), claims.Username)
	if err != nil {
		return errors.Wrap(err, "querying history")
	}
	data, err := exportsvc.HistoryJSON(history)
	if err != nil {
		return err
	}

	setAttachmentHeader(ctx, fmt.Sprintf("%s_history.json", claims.Username))
	return ctx.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

func (api *materialApi) retrieve(ctx echo.Context) error {
	rec, err := api.getRecord(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *materialApi) downloadPDF(ctx echo.Context) error {
	rec, doc, content, err := api.getDocument(ctx)
	if err != nil {
		return err
	}

	data, err := exportsvc.ToPDF(content)
	if err != nil {
		return err
	}
	setAttachmentHeader(ctx, docFilename(doc, rec.Topic, "pdf"))
	return ctx.Blob(http.StatusOK, "application/pdf", data)
}

func (api *materialApi) downloadMarkdown(ctx echo.Context) error {
	rec, doc, content, err := api.getDocument(ctx)
	if err != nil {
		return err
	}

	setAttachmentHeader(ctx, docFilename(doc, rec.Topic, "md"))
	return ctx.Blob(http.StatusOK, "text/markdown", exportsvc.ToMarkdown(content))
}

func (api *materialApi) share(ctx echo.Context) error {
	var data ShareRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ShareRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	rec, err := api.getRecord(ctx)
	if err != nil {
		return err
	}

	msg := &core.EmailMessage{
		Subject: fmt.Sprintf("Teaching materials: %s (%s)", rec.Topic, rec.Difficulty),
		BodyStr: fmt.Sprintf(
			"Please find attached the pre-class, in-class and post-class materials for %q, generated on %s.",
			rec.Topic, rec.Timestamp,
		),
	}
	for _, to := range data.To {
		msg.To = append(msg.To, mail.Address{Address: to})
	}
	for _, doc := range []material.Document{material.DocPreClass, material.DocInClass, material.DocPostClass} {
		content, _ := rec.Content(doc)
		pdf, err := exportsvc.ToPDF(content)
		if err != nil {
			return err
		}
		msg.Attach(pdf, docFilename(doc, rec.Topic, "pdf"), "application/pdf")
	}
	api.emailSvc.SendMessages(msg)

	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Materials sent."})
}

// helpers

func (api *materialApi) getRecord(ctx echo.Context) (material.Record, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return material.Record{}, err
	}

	rec, err := api.svc.Get(ctx.Request().Context(), claims.Username, ctx.Param("topic"))
	if err != nil {
		if errors.Cause(err) == material.ErrNotFound {
			return material.Record{}, errHttpNotFound
		}
		return material.Record{}, errors.Wrap(err, "getting record")
	}
	return rec, nil
}

func (api *materialApi) getDocument(ctx echo.Context) (material.Record, material.Document, string, error) {
	rec, err := api.getRecord(ctx)
	if err != nil {
		return material.Record{}, "", "", err
	}
	doc, err := material.ParseDocument(ctx.Param("doc"))
	if err != nil {
		return material.Record{}, "", "", errHttpNotFound
	}
	content, err := rec.Content(doc)
	if err != nil {
		return material.Record{}, "", "", errHttpNotFound
	}
	return rec, doc, content, nil
}

func docFilename(doc material.Document, topic, ext string) string {
	topic = strings.ReplaceAll(strings.TrimSpace(topic), " ", "_")
	return fmt.Sprintf("%s_%s.%s", doc, topic, ext)
}

func setAttachmentHeader(ctx echo.Context, filename string) {
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
}

type (
	GenerateRequest struct {
		Topic      string `json:"topic" validate:"required"`
		Difficulty string `json:"difficulty" validate:"required"`
	}

	ShareRequest struct {
		To []string `json:"to" validate:"required,min=1,dive,email"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

func (gr *GenerateRequest) Validate() (material.Difficulty, error) {
	gr.Topic = core.CleanString(gr.Topic)
	if err := core.Validate.Struct(gr); err != nil {
		return "", err
	}
	level, err := material.ParseDifficulty(gr.Difficulty)
	if err != nil {
		return "", core.NewValidationError(err, core.FieldError{Field: "difficulty", Error: err.Error()})
	}
	return level, nil
}

func (sr *ShareRequest) Validate() error {
	for i, to := range sr.To {
		sr.To[i] = core.CleanString(to, true /* lower */)
	}
	return core.Validate.Struct(sr)
}
