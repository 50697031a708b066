package apperr

// Fixed user-facing messages, grouped by concern.

const (
	RecipeEnrichFailed = "Unfortunately, we are unable to process your recipe. Check the units or possible typos and try again"
	RecipeNotFound     = "This recipe is not found"
	RecipeCannotUpdate = "You can only update your own recipe"
	RecipeCannotDelete = "You can only delete your own recipe"
	RecipeDeleteFailed = "Deletion failed"

	AuthNotRegistered = "Have not yet registered with this email address"
	AuthInvalidPwd    = "Invalid password"
	AuthNoPermission  = "You do not have permission to perform this operation"
	AuthRegOrLog      = "Please register or log in"

	UserNotFound     = "This user is not found"
	UserDeleteFailed = "Deletion failed"
	UserMissingData  = "Missing data"
	UserCannotUpdate = "Update not allowed for field"
	UserDeleted      = "Deleted user"

	ImageInvalidFile  = "You can upload an image only"
	ImageTooLarge     = "This image is too large"
	ImageUploadFailed = "Image upload is failed"
	ImageDeleteFailed = "Image deletion is failed"
)
