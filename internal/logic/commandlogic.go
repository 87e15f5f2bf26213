package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"draftdesk/internal/svc"
	"draftdesk/internal/types"
)

type CommandLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCommandLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CommandLogic {
	return &CommandLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Command runs one command through the agent. Model failures are reported in
// the log rather than as an HTTP error so the page can keep the conversation.
func (l *CommandLogic) Command(req *types.CommandRequest) (*types.CommandResponse, error) {
	command := strings.TrimSpace(req.Command)
	reply, err := l.svcCtx.Agent.Handle(l.ctx, req.Session, command)

	log := reply.Log
	if command != "" {
		log = append([]string{"You: " + command}, reply.Log...)
	}
	if err != nil {
		l.Errorf("command %q in session %s: %v", command, reply.SessionID, err)
		log = append(log, "Agent: Error: "+err.Error())
	}
	return &types.CommandResponse{Log: log, Session: reply.SessionID}, nil
}
