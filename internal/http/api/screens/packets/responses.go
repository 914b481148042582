package packets

import "github.com/w4tchme/w4tchme/internal/wizard"

type CreateScreenResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

// WizardStateResponse is returned by every wizard endpoint so the client
// can render the current step without a second round trip.
type WizardStateResponse struct {
	SessionID  string        `json:"session_id"`
	Step       wizard.Step   `json:"step"`
	CanAdvance bool          `json:"can_advance"`
	NextLabel  string        `json:"next_label"`
	State      *wizard.State `json:"state"`
}

func NewWizardStateResponse(sessionID string, st *wizard.State) WizardStateResponse {
	return WizardStateResponse{
		SessionID:  sessionID,
		Step:       st.Step,
		CanAdvance: st.CanAdvance(),
		NextLabel:  st.NextLabel(),
		State:      st,
	}
}
