package update_setting

// UpdateSettingRequest HTTP request model
type UpdateSettingRequest struct {
	Value string `json:"value"` // "true" / "false"
}

// UpdateSettingResponse HTTP response model
type UpdateSettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
