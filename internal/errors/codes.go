package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The frontend maps these codes onto localized messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed/forged token
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token blacklisted
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // no access
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // role info missing
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"     // admin only

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // bad payload
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // bad id
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"  // out of range
	ValidationRequired      = "VALIDATION_REQUIRED"       // missing field
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // bad format

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // generic not found
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // duplicate
	ResourceConflict      = "RESOURCE_CONFLICT"       // conflicting state

	// ==================== Catalog (CATALOG_) ====================
	DestinationNotFound   = "CATALOG_DESTINATION_NOT_FOUND"
	ActivityNotFound      = "CATALOG_ACTIVITY_NOT_FOUND"
	AccommodationNotFound = "CATALOG_ACCOMMODATION_NOT_FOUND"
	PackageNotFound       = "CATALOG_PACKAGE_NOT_FOUND"

	// ==================== Reviews (REVIEW_) ====================
	ReviewNotFound      = "REVIEW_NOT_FOUND"
	ReviewInvalidRating = "REVIEW_INVALID_RATING" // rating must be 1-5
	ReviewAlreadyExists = "REVIEW_ALREADY_EXISTS" // one review per destination

	// ==================== Favorites (FAVORITE_) ====================
	FavoriteAlreadyExists      = "FAVORITE_ALREADY_EXISTS"       // item already favorited
	FavoriteNotFound           = "FAVORITE_NOT_FOUND"            // favorite not found
	FavoriteInvalidItemType    = "FAVORITE_INVALID_ITEM_TYPE"    // unknown item type
	CollectionNotFound         = "FAVORITE_COLLECTION_NOT_FOUND" // collection not found
	CollectionDefaultProtected = "FAVORITE_COLLECTION_PROTECTED" // default collection cannot be deleted
	FavoriteStorageUnavailable = "FAVORITE_STORAGE_UNAVAILABLE"  // snapshot backend failure

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
