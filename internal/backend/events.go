package backend

import (
	"context"

	"go.uber.org/zap"

	backenddb "github.com/nao1215/syncbase/internal/backend/db"
	"github.com/nao1215/syncbase/pkg/event"
)

// emitEvent は監査イベントをイベントテーブルに追記する。
// 追記に失敗した場合はログに記録するが、呼び出し元にはエラーを返さない。
func (s *Service) emitEvent(ctx context.Context, aggregateID string, aggregateType event.AggregateType, eventType event.Type, data any) {
	ev, err := event.New(aggregateID, aggregateType, eventType, data)
	if err != nil {
		s.logger.Error("イベントの生成に失敗",
			zap.String("event_type", string(eventType)),
			zap.Error(err),
		)
		return
	}

	if err := s.queries.AppendEvent(ctx, backenddb.AppendEventParams{
		ID:            ev.ID,
		AggregateID:   ev.AggregateID,
		AggregateType: string(ev.AggregateType),
		EventType:     string(ev.EventType),
		Data:          string(ev.Data),
	}); err != nil {
		s.logger.Error("イベントの追記に失敗",
			zap.String("event_type", string(eventType)),
			zap.String("aggregate_id", aggregateID),
			zap.Error(err),
		)
	}
}
