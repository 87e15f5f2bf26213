package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"draftdesk/internal/svc"
	"draftdesk/internal/types"
)

type DraftsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDraftsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DraftsLogic {
	return &DraftsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *DraftsLogic) Drafts() (*types.DraftsResponse, error) {
	files, err := l.svcCtx.Agent.Drafts().List()
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []string{}
	}
	return &types.DraftsResponse{Files: files}, nil
}
