package consts

const (
	TokenBlacklistKey = "auth:blacklist:"
	LoginFailureKey   = "auth:login:fail:"
	MediaPendingKey   = "media:pending"
	FolderListKey     = "folder:list"
)

const (
	PendingUploadCleanLock = "lock:job:pending-upload"
	InvitationCleanLock    = "lock:job:invitation"
)
