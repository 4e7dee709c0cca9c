package controllers

import (
	"net/http"

	"gitlab.com/moth-works/rolekeeper/utils/logging"
	"gitlab.com/moth-works/rolekeeper/viewmodels"
	"go.uber.org/zap"
)

// GetRolePicker responds with the current picker document and the number of
// in-flight approval requests
func (c *Controller) GetRolePicker(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	response := viewmodels.GetRolePickerResponse{
		Message:          "Role picker configuration",
		Config:           c.Engine.Store.Config(),
		PendingApprovals: c.Engine.PendingApprovals(),
	}

	Response(ctx, w, response, http.StatusOK)
}
