package persistence

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"draftdesk/pkg/agent"
)

//go:embed schema.sql
var schemaSQL string

// Execer is the subset of sqlx.SqlConn used to write exchanges.
type Execer interface {
	ExecCtx(ctx context.Context, query string, args ...any) (sql.Result, error)
}

var (
	_ Execer                 = (sqlx.SqlConn)(nil)
	_ agent.ExchangeRecorder = (*ExchangeLog)(nil)
)

// ExchangeLog stores model prompt/response pairs in Postgres.
type ExchangeLog struct {
	conn Execer
}

// NewExchangeLog returns nil when conn is nil.
func NewExchangeLog(conn Execer) *ExchangeLog {
	if conn == nil {
		return nil
	}
	return &ExchangeLog{conn: conn}
}

// EnsureSchema creates the exchanges table when missing.
func (l *ExchangeLog) EnsureSchema(ctx context.Context) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := l.conn.ExecCtx(ctx, stmt); err != nil {
			return fmt.Errorf("persistence: ensure schema: %w", err)
		}
	}
	return nil
}

// RecordExchange inserts one exchange row. Exchanges without prompts are skipped.
func (l *ExchangeLog) RecordExchange(ctx context.Context, ex agent.Exchange) error {
	if l == nil || l.conn == nil {
		return errors.New("persistence: exchange log not initialised")
	}
	if strings.TrimSpace(ex.SystemPrompt) == "" && strings.TrimSpace(ex.UserPrompt) == "" {
		return nil
	}
	ts := ex.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	errText := sql.NullString{}
	if ex.Error != "" {
		errText = sql.NullString{String: ex.Error, Valid: true}
	}
	meta, err := json.Marshal(map[string]any{
		"system_chars":   len(ex.SystemPrompt),
		"user_chars":     len(ex.UserPrompt),
		"response_chars": len(ex.Response),
	})
	if err != nil {
		return fmt.Errorf("persistence: encode metadata: %w", err)
	}

	_, err = l.conn.ExecCtx(ctx, `
INSERT INTO public.llm_exchanges (session_id, stage, model, system_prompt, user_prompt, response, error, duration_ms, ts_ms, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())`,
		ex.SessionID,
		ex.Stage,
		ex.Model,
		ex.SystemPrompt,
		ex.UserPrompt,
		ex.Response,
		errText,
		ex.Duration.Milliseconds(),
		ts.UTC().UnixMilli(),
		string(meta),
	)
	if err != nil {
		return fmt.Errorf("persistence: insert %s exchange: %w", ex.Stage, err)
	}
	return nil
}
