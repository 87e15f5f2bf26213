package persistence

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"draftdesk/pkg/agent"
)

type mockExecer struct {
	mock.Mock
}

func (m *mockExecer) ExecCtx(ctx context.Context, query string, args ...any) (sql.Result, error) {
	called := m.Called(ctx, query, args)
	res, _ := called.Get(0).(sql.Result)
	return res, called.Error(1)
}

type rowsAffected int64

func (r rowsAffected) LastInsertId() (int64, error) { return 0, nil }
func (r rowsAffected) RowsAffected() (int64, error) { return int64(r), nil }

func TestRecordExchange(t *testing.T) {
	conn := &mockExecer{}
	ts := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
	conn.On("ExecCtx", mock.Anything, mock.MatchedBy(func(q string) bool {
		return strings.Contains(q, "INSERT INTO public.llm_exchanges")
	}), mock.MatchedBy(func(args []any) bool {
		if len(args) != 10 {
			return false
		}
		errText, _ := args[6].(sql.NullString)
		return args[0] == "s1" && args[1] == agent.StageResolve && args[2] == "llama3.2" &&
			args[4] == "List my drafts" && !errText.Valid &&
			args[7] == int64(1500) && args[8] == ts.UnixMilli() &&
			strings.Contains(args[9].(string), `"user_chars":14`)
	})).Return(rowsAffected(1), nil).Once()

	log := NewExchangeLog(conn)
	err := log.RecordExchange(context.Background(), agent.Exchange{
		SessionID:    "s1",
		Stage:        agent.StageResolve,
		Model:        "llama3.2",
		SystemPrompt: "You are a LinkedIn Draft Agent",
		UserPrompt:   "List my drafts",
		Response:     `{"tool":"list_files"}`,
		Duration:     1500 * time.Millisecond,
		Timestamp:    ts,
	})
	require.NoError(t, err)
	conn.AssertExpectations(t)
}

func TestRecordExchangeError(t *testing.T) {
	conn := &mockExecer{}
	conn.On("ExecCtx", mock.Anything, mock.Anything, mock.MatchedBy(func(args []any) bool {
		errText, _ := args[6].(sql.NullString)
		return errText.Valid && errText.String == "timeout"
	})).Return(nil, errors.New("relation does not exist")).Once()

	err := NewExchangeLog(conn).RecordExchange(context.Background(), agent.Exchange{
		Stage:      agent.StageAuthor,
		UserPrompt: "Create a LinkedIn post.",
		Error:      "timeout",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relation does not exist")
	conn.AssertExpectations(t)
}

func TestRecordExchangeSkipsEmpty(t *testing.T) {
	conn := &mockExecer{}
	require.NoError(t, NewExchangeLog(conn).RecordExchange(context.Background(), agent.Exchange{Stage: agent.StageResolve}))
	conn.AssertNotCalled(t, "ExecCtx", mock.Anything, mock.Anything, mock.Anything)

	assert.Nil(t, NewExchangeLog(nil))
	var nilLog *ExchangeLog
	assert.Error(t, nilLog.RecordExchange(context.Background(), agent.Exchange{UserPrompt: "x"}))
}

func TestEnsureSchema(t *testing.T) {
	conn := &mockExecer{}
	conn.On("ExecCtx", mock.Anything, mock.MatchedBy(func(q string) bool {
		return strings.Contains(q, "CREATE TABLE IF NOT EXISTS public.llm_exchanges")
	}), mock.Anything).Return(rowsAffected(0), nil).Once()
	conn.On("ExecCtx", mock.Anything, mock.MatchedBy(func(q string) bool {
		return strings.Contains(q, "CREATE INDEX IF NOT EXISTS")
	}), mock.Anything).Return(rowsAffected(0), nil).Once()

	require.NoError(t, NewExchangeLog(conn).EnsureSchema(context.Background()))
	conn.AssertExpectations(t)
}
