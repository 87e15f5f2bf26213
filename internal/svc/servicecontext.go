package svc

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"draftdesk/internal/config"
	"draftdesk/internal/persistence"
	agentpkg "draftdesk/pkg/agent"
	llmpkg "draftdesk/pkg/llm"
	"draftdesk/pkg/opener"
	"draftdesk/pkg/session"
)

type ServiceContext struct {
	Config config.Config

	LLMConfig   *llmpkg.Config
	AgentConfig *agentpkg.Config
	LLMClient   llmpkg.LLMClient
	Sessions    session.Store
	Agent       *agentpkg.Agent

	// Optional infrastructure, nil unless configured.
	Redis     *redis.Redis
	DBConn    sqlx.SqlConn
	Exchanges *persistence.ExchangeLog
}

// Dependencies lets callers replace external collaborators, mainly in tests.
type Dependencies struct {
	LLMClient llmpkg.LLMClient
	Opener    opener.Opener
	Sessions  session.Store
}

func NewServiceContext(c config.Config) *ServiceContext {
	svc, err := Build(c, Dependencies{})
	logx.Must(err)
	return svc
}

// Build wires the agent and its stores from configuration.
func Build(c config.Config, deps Dependencies) (*ServiceContext, error) {
	svc := &ServiceContext{
		Config:      c,
		LLMConfig:   c.LLMConfig(),
		AgentConfig: c.AgentConfig(),
	}

	svc.LLMClient = deps.LLMClient
	if svc.LLMClient == nil {
		client, err := llmpkg.NewClient(svc.LLMConfig)
		if err != nil {
			return nil, fmt.Errorf("svc: llm client: %w", err)
		}
		svc.LLMClient = client
	}

	svc.Sessions = deps.Sessions
	if svc.Sessions == nil {
		store, err := svc.buildSessions()
		if err != nil {
			return nil, err
		}
		svc.Sessions = store
	}

	var recorder agentpkg.ExchangeRecorder
	if c.Postgres.DSN != "" {
		conn := sqlx.NewSqlConn("pgx", c.Postgres.DSN)
		if raw, err := conn.RawDB(); err == nil {
			raw.SetMaxOpenConns(c.Postgres.MaxOpen)
			raw.SetMaxIdleConns(c.Postgres.MaxIdle)
		}
		svc.DBConn = conn
		svc.Exchanges = persistence.NewExchangeLog(conn)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := svc.Exchanges.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		recorder = svc.Exchanges
	}

	open := deps.Opener
	if open == nil {
		open = opener.NewSystem()
	}
	agent, err := agentpkg.Build(svc.AgentConfig, svc.LLMClient, svc.Sessions, open, recorder)
	if err != nil {
		return nil, fmt.Errorf("svc: agent: %w", err)
	}
	svc.Agent = agent
	return svc, nil
}

func (s *ServiceContext) buildSessions() (session.Store, error) {
	switch s.Config.Sessions.Store {
	case config.SessionStoreRedis:
		rds, err := redis.NewRedis(s.Config.Redis)
		if err != nil {
			return nil, fmt.Errorf("svc: redis: %w", err)
		}
		s.Redis = rds
		return session.NewRedisStore(rds, time.Duration(s.Config.Sessions.TTL)*time.Second), nil
	default:
		store, err := session.NewMemoryStore(s.Config.Sessions.Capacity)
		if err != nil {
			return nil, fmt.Errorf("svc: session store: %w", err)
		}
		return store, nil
	}
}

// Close releases client resources.
func (s *ServiceContext) Close() error {
	if s.LLMClient != nil {
		return s.LLMClient.Close()
	}
	return nil
}
