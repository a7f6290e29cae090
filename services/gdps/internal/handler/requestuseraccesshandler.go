package handler

import (
	"net/http"

	"github.com/gdps-go/gdps/services/gdps/internal/logic"
	"github.com/gdps-go/gdps/services/gdps/internal/response"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
)

func RequestUserAccessHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewRequestUserAccessLogic(r.Context(), svcCtx)
		resp, err := l.RequestUserAccess()
		response.Write(w, r, resp, err)
	}
}
