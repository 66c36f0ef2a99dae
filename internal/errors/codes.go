package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"
	CodeTimeout          Code = "TIMEOUT_ERROR"

	// Environment and metadata
	CodeNotOnGCE           Code = "NOT_ON_GCE"
	CodeMetadataError      Code = "METADATA_ERROR"
	CodeMetadataClearError Code = "METADATA_CLEAR_ERROR"
	CodeMissingAttribute   Code = "MISSING_ATTRIBUTE"

	// Side effects
	CodeCredentialWrite  Code = "CREDENTIAL_WRITE_ERROR"
	CodeExternalCommand  Code = "EXTERNAL_COMMAND_ERROR"
	CodeToolNotReady     Code = "TOOL_NOT_READY"
	CodeProviderConflict Code = "PROVIDER_CONFLICT"

	// Google Cloud APIs
	CodePlatformAPIError  Code = "PLATFORM_API_ERROR"
	CodePlatformAuthError Code = "PLATFORM_AUTH_ERROR"
	CodeResourceNotFound  Code = "RESOURCE_NOT_FOUND"
)

func (c Code) String() string {
	return string(c)
}
