package viewmodels

import "gitlab.com/moth-works/rolekeeper/rolepicker"

// GetRolePickerResponse response struct for the role picker request
type GetRolePickerResponse struct {
	Message          string                   `json:"message"`
	Config           *rolepicker.PickerConfig `json:"config"`
	PendingApprovals int                      `json:"pending_approvals"`
}
