package database

// Collection names as constants to prevent typos
const (
	UsersCollection   = "users"
	FoldersCollection = "folders"
	ImagesCollection  = "images"
	OTPsCollection    = "otps"
)
