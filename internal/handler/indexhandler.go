package handler

import (
	_ "embed"
	"net/http"

	"draftdesk/internal/svc"
)

//go:embed static/index.html
var indexPage []byte

func IndexHandler(_ *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(indexPage)
	}
}
