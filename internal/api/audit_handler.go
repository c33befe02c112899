package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/lzjever/project-audit/internal/core"
)

// GetAuditData serves GET /get-audit-data?projectId=<id>.
func (a *API) GetAuditData(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("projectId")

	data, err := a.svc.GetAuditData(r.Context(), projectID)
	if err != nil {
		var appErr *core.AppError
		if !errors.As(err, &appErr) {
			a.log.Error("get audit data failed", zap.Error(err))
			appErr = core.NewAppError(core.ErrInternal, core.MsgFetchFailed)
		}
		WriteError(w, appErr)
		return
	}

	WriteRawJSON(w, http.StatusOK, data)
}
