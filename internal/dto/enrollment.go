package dto

// ApproveAdmissionRequest defines the payload for approving an admission
// application, which triggers the enrollment workflow.
type ApproveAdmissionRequest struct {
	ApplicantName  string `json:"applicantName" binding:"required"`
	ApplicantEmail string `json:"applicantEmail" binding:"required,email"`
	Grade          string `json:"grade" binding:"required"`
	Section        string `json:"section" binding:"required"`
}
