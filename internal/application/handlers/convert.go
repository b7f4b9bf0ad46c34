package handlers

import (
	"context"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
	"github.com/peter88213/novelibre-sub001/internal/domain/services"
)

// ConvertHandler runs conversions.
type ConvertHandler struct {
	converter *services.Converter
}

// NewConvertHandler creates a new convert handler.
func NewConvertHandler(converter *services.Converter) *ConvertHandler {
	return &ConvertHandler{
		converter: converter,
	}
}

// Handle converts source once per suffix. Without suffixes, the source is
// converted once with the default suffix. Conversion stops at the first
// failed report.
func (h *ConvertHandler) Handle(ctx context.Context, source string, suffixes []string) []services.Report {
	if len(suffixes) == 0 {
		suffixes = []string{""}
	}
	reports := make([]services.Report, 0, len(suffixes))
	for _, suffix := range suffixes {
		r := h.converter.Run(ctx, source, suffix)
		reports = append(reports, r)
		if r.Err != nil || r.Action != entities.ActionExport {
			break
		}
	}
	return reports
}
