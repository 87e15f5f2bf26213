// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	"draftdesk/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/",
				Handler: IndexHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/command",
				Handler: CommandHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/drafts",
				Handler: DraftsHandler(serverCtx),
			},
		},
	)
}
