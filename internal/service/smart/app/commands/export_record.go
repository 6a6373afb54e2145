package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Cleo-Systems/elevate-smart-export/internal/service/common"
	"github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/adapters/rdf"
)

type ExportRecordCommand struct {
	RecordID string
	Bundle   *common.Bundle
	Format   rdf.Format
}

type ExportRecordResult struct {
	ExportID    string
	Document    string
	ContentType string
	Statements  int
}

type ExportRecordHandler interface {
	Handle(ctx context.Context, cmd ExportRecordCommand) (result ExportRecordResult, err error)
}

func NewExportRecordHandler(baseURI string, defaultFormat rdf.Format, logger zerolog.Logger) ExportRecordHandler {
	return &exportRecordCmdHandler{
		baseURI:       baseURI,
		defaultFormat: defaultFormat,
		logger:        logger,
	}
}

type exportRecordCmdHandler struct {
	baseURI       string
	defaultFormat rdf.Format
	logger        zerolog.Logger
}

func (h *exportRecordCmdHandler) Handle(ctx context.Context, cmd ExportRecordCommand) (ExportRecordResult, error) {
	bundle := cmd.Bundle
	if bundle == nil {
		bundle = &common.Bundle{}
	}
	h.stamp(cmd.RecordID, bundle)

	g := rdf.New()
	g.AddDemographics(bundle.Demographics)
	g.AddMedList(bundle.Medications)
	g.AddFillList(bundle.Fills)
	g.AddProblemList(bundle.Problems)
	g.AddVitalSigns(bundle.Vitals)
	if err := g.AddImmunizations(bundle.Immunizations); err != nil {
		return ExportRecordResult{}, err
	}
	g.AddLabResults(bundle.LabResults)
	g.AddAllergies(bundle.Allergies)

	format := cmd.Format
	if format == "" {
		format = h.defaultFormat
	}
	if format == "" {
		format = rdf.DefaultFormat
	}

	doc, err := g.Serialize(format)
	if err != nil {
		return ExportRecordResult{}, err
	}

	exportID := uuid.New().String()
	h.logger.Info().
		Str("export_id", exportID).
		Str("record_id", cmd.RecordID).
		Str("format", string(format)).
		Int("statements", g.Len()).
		Msg("record exported")

	return ExportRecordResult{
		ExportID:    exportID,
		Document:    doc,
		ContentType: format.ContentType(),
		Statements:  g.Len(),
	}, nil
}

// stamp fills in record identity fields the data layer leaves to the
// service: the owning record ID and the configured URI base.
func (h *exportRecordCmdHandler) stamp(recordID string, b *common.Bundle) {
	if recordID == "" {
		recordID = b.RecordID
	}
	b.RecordID = recordID

	for _, m := range b.Medications {
		h.stampMedication(recordID, m)
	}
	for _, f := range b.Fills {
		h.stampFill(recordID, f)
	}
	for _, p := range b.Problems {
		if p == nil {
			continue
		}
		if p.RecordID == "" {
			p.RecordID = recordID
		}
		if p.BaseURI == "" {
			p.BaseURI = h.baseURI
		}
	}
}

func (h *exportRecordCmdHandler) stampMedication(recordID string, m *common.Medication) {
	if m == nil {
		return
	}
	if m.RecordID == "" {
		m.RecordID = recordID
	}
	if m.BaseURI == "" {
		m.BaseURI = h.baseURI
	}
	for _, f := range m.Fulfillments {
		h.stampFill(recordID, f)
	}
}

func (h *exportRecordCmdHandler) stampFill(recordID string, f *common.Fill) {
	if f == nil {
		return
	}
	if f.RecordID == "" {
		f.RecordID = recordID
	}
	if f.BaseURI == "" {
		f.BaseURI = h.baseURI
	}
	if f.Medication != nil {
		h.stampMedication(recordID, f.Medication)
	}
}
