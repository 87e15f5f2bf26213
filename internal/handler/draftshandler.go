package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"draftdesk/internal/logic"
	"draftdesk/internal/svc"
)

func DraftsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewDraftsLogic(r.Context(), svcCtx)
		resp, err := l.Drafts()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
