package provider

// Client-facing messages of the provider API.
const (
	MsgProviderNotFound    = "Provider not found"
	MsgProviderExists      = "Provider profile already exists for this user"
	MsgProviderRole        = "Only provider accounts can set up a provider profile"
	MsgBusinessName        = "Business name is required"
	MsgServiceNotFound     = "Service not found"
	MsgServiceInvalid      = "Service name, positive duration and non-negative price are required"
	MsgSettingsInvalid     = "Settings values must not be negative"
	MsgRatingRange         = "Rating must be between 1 and 5"
	MsgProviderLoadFailed  = "Failed to load provider"
	MsgProviderSaveFailed  = "Failed to save provider"
	MsgCatalogFailed       = "Failed to load services"
	MsgSettingsFailed      = "Failed to load settings"
	MsgReviewsFailed       = "Failed to load reviews"
	MsgReviewCreateFailed  = "Failed to create review"
	MsgReviewBookingDenied = "Review must refer to your own booking with this provider"
)
