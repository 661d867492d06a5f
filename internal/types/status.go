package types

// Status tracks the lifecycle of a persisted resource and determines whether it
// should be included in queries. Any change here needs a matching migration.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Validate() bool {
	switch s {
	case StatusPublished, StatusArchived, StatusDeleted:
		return true
	}
	return false
}
