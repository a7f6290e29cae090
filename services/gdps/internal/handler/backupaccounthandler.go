package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"github.com/gdps-go/gdps/services/gdps/internal/logic"
	"github.com/gdps-go/gdps/services/gdps/internal/response"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

func BackupAccountHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.BackupRequest
		if err := httpx.Parse(r, &req); err != nil {
			response.Invalid(w, r, err)
			return
		}

		l := logic.NewBackupAccountLogic(r.Context(), svcCtx)
		resp, err := l.BackupAccount(&req)
		response.Write(w, r, resp, err)
	}
}
