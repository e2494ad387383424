package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// Marks a single test question is worth at full score.
const MarksPerQuestion = 1000

// Folder item types.
const (
	ItemTypeNews   = "news"
	ItemTypeDebate = "debate"
)

// Career option weights (Likert scale).
const (
	WeightStronglyDisagree = 0
	WeightNeutral          = 1
	WeightStronglyAgree    = 2
)
