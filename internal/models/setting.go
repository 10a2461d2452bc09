package models

import "time"

// Setting is one row of the versionless key-value settings table
// (tax rate, currency, company info). Read fresh on every request;
// never cached in process.
type Setting struct {
	Key             string    `json:"key"`
	Value           string    `json:"value"`
	UpdatedByUserID int       `json:"updated_by_user_id"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Well-known setting keys
const (
	SettingTaxRate           = "tax_rate"
	SettingCurrency          = "currency"
	SettingBusinessName      = "business_name"
	SettingGSTTIN            = "gst_tin"
	SettingTaxableActivityNo = "taxable_activity_number"
)

// UpdateSettingRequest represents the request body for upserting one setting
type UpdateSettingRequest struct {
	Value string `json:"value"`
}

// BulkSettingsRequest represents the request body for upserting many settings
type BulkSettingsRequest struct {
	Settings map[string]string `json:"settings"`
}
