package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"draftdesk/internal/logic"
	"draftdesk/internal/svc"
	"draftdesk/internal/types"
)

func CommandHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CommandRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := logic.NewCommandLogic(r.Context(), svcCtx)
		resp, err := l.Command(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
