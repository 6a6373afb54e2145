package app

import (
	"context"

	"github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/app/commands"
	"github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/app/queries"
)

type CommandBus interface {
	ExportRecord(ctx context.Context, cmd commands.ExportRecordCommand) (commands.ExportRecordResult, error)
}

type QueryBus interface {
	ListFormats(ctx context.Context, q queries.ListFormatsQuery) (queries.ListFormatsResult, error)
}

type commandBus struct {
	exportRecord commands.ExportRecordHandler
}

type queryBus struct {
	listFormats queries.ListFormatsQueryHandler
}

func NewCommandBus(export commands.ExportRecordHandler) CommandBus {
	return &commandBus{
		exportRecord: export,
	}
}

func NewQueryBus(list queries.ListFormatsQueryHandler) QueryBus {
	return &queryBus{
		listFormats: list,
	}
}

func (b *commandBus) ExportRecord(ctx context.Context, cmd commands.ExportRecordCommand) (commands.ExportRecordResult, error) {
	return b.exportRecord.Handle(ctx, cmd)
}

func (b *queryBus) ListFormats(ctx context.Context, q queries.ListFormatsQuery) (queries.ListFormatsResult, error) {
	return b.listFormats.Handle(ctx, q)
}
