package handler

import (
	"net/http"

	"github.com/gdps-go/gdps/services/gdps/internal/logic"
	"github.com/gdps-go/gdps/services/gdps/internal/response"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
)

func AccountURLHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewAccountURLLogic(r.Context(), svcCtx)
		resp, err := l.AccountURL()
		response.Write(w, r, resp, err)
	}
}
