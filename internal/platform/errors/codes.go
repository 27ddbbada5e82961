// Package errors provides structured error handling for the asset platform.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Configuration errors
	CodeAssetBaseURLMissing Code = "ASSET_BASE_URL_MISSING"

	// Asset resolution errors
	CodeAssetNameEmpty       Code = "ASSET_NAME_EMPTY"
	CodeAssetCategoryUnknown Code = "ASSET_CATEGORY_UNKNOWN"

	// Asset fetch errors
	CodeAssetNotFound    Code = "ASSET_NOT_FOUND"
	CodeAssetFetchFailed Code = "ASSET_FETCH_FAILED"
	CodeAssetDecodeError Code = "ASSET_DECODE_ERROR"
)
