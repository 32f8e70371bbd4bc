package consts

const (
	MimePrefixImage = "image/"
	MimePrefixVideo = "video/"
)

const (
	// MediaObjectPrefix 原始文件前缀 media/{userId}/
	MediaObjectPrefix = "media/"
	// ThumbnailObjectPrefix 缩略图前缀 thumbnails/{原始 key}.jpg
	ThumbnailObjectPrefix = "thumbnails/"
	ThumbnailWidth        = 400
)

const (
	DefaultMediaLimit = 50
	MaxMediaLimit     = 100
	MaxBulkIDs        = 100
	BulkDeleteWorkers = 8
)

const (
	InvitationTTLDays = 7
	MinPasswordLength = 8
)

const (
	LoginMaxFailures   = 10
	LoginFailureWindow = 15 // 分钟
)
