package models

// Viewer is the dashboard user as asserted by the authenticating proxy.
type Viewer struct {
	DisplayName string
	Email       string
	Roles       []string
}

// Identified is false for anonymous requests.
func (v *Viewer) Identified() bool {
	return v != nil && v.DisplayName != ""
}
