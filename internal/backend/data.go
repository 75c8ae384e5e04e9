package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	backenddb "github.com/nao1215/syncbase/internal/backend/db"
	"github.com/nao1215/syncbase/pkg/event"
)

const (
	// defaultCollection はコレクション名が指定されない場合に使用する名前。
	defaultCollection = "default"
	// defaultDataLimit は取得レコード数のデフォルト上限。
	defaultDataLimit = 100
	// maxDataLimit は取得レコード数の最大上限。
	maxDataLimit = 500
)

// storeDataRequest はデータ保存リクエストのJSON構造。
type storeDataRequest struct {
	// Collection は保存先のコレクション名。省略時は "default"。
	Collection string `json:"collection"`
	// Records は保存するレコードの一覧。
	Records []dataRecordInput `json:"records"`
}

// dataRecordInput は保存する1件のレコード。
type dataRecordInput struct {
	// Key はコレクション内で一意のキー。
	Key string `json:"key"`
	// Value はレコードの値。任意のJSON値を受け付ける。
	Value json.RawMessage `json:"value"`
}

// toDataRecordMap はDB行をレスポンス用のマップに変換する。
// 保存された値はJSONとして格納されているため、そのまま埋め込む。
func toDataRecordMap(r backenddb.DataRecord) map[string]any {
	return map[string]any{
		"id":         r.ID,
		"key":        r.Key,
		"value":      json.RawMessage(r.Value),
		"updated_at": r.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// GetProjectData はプロジェクトのデータレコードを取得する。
// クエリパラメータ collection / since / limit で取得範囲を制御する。
func (s *Service) GetProjectData(ctx context.Context, userID, projectID string, query url.Values) (map[string]any, error) {
	if _, err := s.getOwnedProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	collection := query.Get("collection")
	if collection == "" {
		collection = defaultCollection
	}

	limit := int64(defaultDataLimit)
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, errors.New("limitには正の整数を指定してください")
		}
		if parsed > maxDataLimit {
			parsed = maxDataLimit
		}
		limit = parsed
	}

	var records []backenddb.DataRecord
	if raw := query.Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errors.New("sinceにはRFC3339形式の日時を指定してください")
		}
		records, err = s.queries.ListDataRecordsSince(ctx, backenddb.ListDataRecordsSinceParams{
			ProjectID:  projectID,
			Collection: collection,
			Since:      since.UTC().Format("2006-01-02 15:04:05"),
			Limit:      limit,
		})
		if err != nil {
			return nil, fmt.Errorf("データレコードの取得に失敗: %w", err)
		}
	} else {
		var err error
		records, err = s.queries.ListDataRecords(ctx, backenddb.ListDataRecordsParams{
			ProjectID:  projectID,
			Collection: collection,
			Limit:      limit,
		})
		if err != nil {
			return nil, fmt.Errorf("データレコードの取得に失敗: %w", err)
		}
	}

	result := make([]map[string]any, 0, len(records))
	for _, r := range records {
		result = append(result, toDataRecordMap(r))
	}

	return map[string]any{
		"success":    true,
		"collection": collection,
		"records":    result,
		"count":      len(result),
	}, nil
}

// StoreProjectData はプロジェクトにデータレコードを保存する。
// (コレクション, キー) が既に存在する場合は値を上書きする。
func (s *Service) StoreProjectData(ctx context.Context, userID, projectID string, body json.RawMessage) (map[string]any, error) {
	if _, err := s.getOwnedProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	var req storeDataRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("リクエストが不正です: %w", err)
	}

	if req.Collection == "" {
		req.Collection = defaultCollection
	}
	if len(req.Records) == 0 {
		return nil, errors.New("保存するレコードを1件以上指定してください")
	}

	for i, r := range req.Records {
		if r.Key == "" {
			return nil, fmt.Errorf("records[%d]: キーを指定してください", i)
		}
		if len(r.Value) == 0 {
			return nil, fmt.Errorf("records[%d]: 値を指定してください", i)
		}
		if err := s.queries.UpsertDataRecord(ctx, backenddb.UpsertDataRecordParams{
			ID:         uuid.New().String(),
			ProjectID:  projectID,
			Collection: req.Collection,
			Key:        r.Key,
			Value:      string(r.Value),
		}); err != nil {
			return nil, fmt.Errorf("データレコードの保存に失敗: %w", err)
		}
	}

	s.emitEvent(ctx, projectID, event.AggregateTypeProject, event.TypeDataStored, event.DataStoredData{
		UserID:     userID,
		Collection: req.Collection,
		Count:      len(req.Records),
	})

	s.logger.Info("データレコードを保存",
		zap.String("project_id", projectID),
		zap.String("collection", req.Collection),
		zap.Int("count", len(req.Records)),
	)

	return map[string]any{
		"success":    true,
		"collection": req.Collection,
		"stored":     len(req.Records),
	}, nil
}
