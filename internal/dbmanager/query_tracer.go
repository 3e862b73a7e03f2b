package dbmanager

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/talx-hub/fideliza/internal/model"
)

type queryTracer struct {
	log *slog.Logger
}

func (t *queryTracer) TraceQueryStart(
	ctx context.Context,
	_ *pgx.Conn,
	data pgx.TraceQueryStartData,
) context.Context {
	t.log.LogAttrs(ctx,
		slog.LevelDebug,
		"loyalty store query",
		slog.String("sql", data.SQL),
		slog.Int("arg_count", len(data.Args)),
	)
	return ctx
}

func (t *queryTracer) TraceQueryEnd(
	ctx context.Context,
	_ *pgx.Conn,
	data pgx.TraceQueryEndData,
) {
	if data.Err != nil {
		t.log.LogAttrs(ctx,
			slog.LevelDebug,
			"loyalty store query failed",
			slog.Any(model.KeyLoggerError, data.Err),
		)
		return
	}
	t.log.LogAttrs(ctx,
		slog.LevelDebug,
		"loyalty store query done",
		slog.String("command_tag", data.CommandTag.String()),
	)
}
