package queries

import (
	"context"

	"github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/adapters/rdf"
)

type ListFormatsQuery struct {
}

type FormatInfo struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
}

type ListFormatsResult struct {
	Default string       `json:"default"`
	Formats []FormatInfo `json:"formats"`
}

type ListFormatsQueryHandler interface {
	Handle(ctx context.Context, query ListFormatsQuery) (result ListFormatsResult, err error)
}

func NewListFormatsQueryHandler(defaultFormat rdf.Format) ListFormatsQueryHandler {
	if defaultFormat == "" {
		defaultFormat = rdf.DefaultFormat
	}
	return &listFormatsQueryHandler{defaultFormat: defaultFormat}
}

type listFormatsQueryHandler struct {
	defaultFormat rdf.Format
}

func (h *listFormatsQueryHandler) Handle(ctx context.Context, query ListFormatsQuery) (ListFormatsResult, error) {
	res := ListFormatsResult{Default: string(h.defaultFormat)}
	for _, f := range rdf.Formats() {
		res.Formats = append(res.Formats, FormatInfo{
			Name:        string(f),
			ContentType: f.ContentType(),
		})
	}
	return res, nil
}
