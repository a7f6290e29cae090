package handler

import (
	"net/http"

	"github.com/gdps-go/gdps/services/gdps/internal/logic"
	"github.com/gdps-go/gdps/services/gdps/internal/response"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
)

func CustomContentURLHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewCustomContentURLLogic(r.Context(), svcCtx)
		resp, err := l.CustomContentURL()
		response.Write(w, r, resp, err)
	}
}
