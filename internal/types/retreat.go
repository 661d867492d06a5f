package types

// RetreatFilter represents filters for retreat queries
type RetreatFilter struct {
	QueryFilter
	PublishedOnly bool   `form:"published_only"`
	UpcomingOnly  bool   `form:"upcoming_only"`
	Trashed       bool   `form:"trashed"`
	Location      string `form:"location"`
}

// BlogPostFilter represents filters for blog post queries
type BlogPostFilter struct {
	QueryFilter
	PublishedOnly bool   `form:"published_only"`
	Trashed       bool   `form:"trashed"`
	Tag           string `form:"tag"`
}
