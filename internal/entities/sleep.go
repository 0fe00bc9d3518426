package entities

// Sleep is one night's sleep record as stored in the sleep table.
type Sleep struct {
	ID      int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Night   string  `gorm:"not null" json:"night"`   // yyyy-mm-dd
	Amount  float64 `gorm:"not null" json:"amount"`  // hours slept
	Quality int64   `gorm:"not null" json:"quality"` // caller-defined scale
}

func (Sleep) TableName() string {
	return "sleep"
}

type Tag struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Color int64  `gorm:"not null" json:"color"` // packed 0xRRGGBB
}

func (Tag) TableName() string {
	return "tag"
}

// SleepTag associates a tag with a sleep. The same pair may appear more than
// once; deletion addresses rows by (SleepID, TagID).
type SleepTag struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	SleepID int64 `gorm:"not null" json:"sleep_id"`
	TagID   int64 `gorm:"not null" json:"tag_id"`
}

func (SleepTag) TableName() string {
	return "sleep_tags"
}

type Comment struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	SleepID int64  `gorm:"not null" json:"sleep_id"`
	Comment string `gorm:"not null" json:"comment"`
}

func (Comment) TableName() string {
	return "comment"
}

// SleepAggregate is a sleep with its tags attached on request. It is built
// per call and never persisted.
//
// Tags is nil when tags were not requested. A non-nil pointer to an empty
// slice means they were requested and none are attached.
type SleepAggregate struct {
	Sleep Sleep
	Tags  *[]Tag
}

// HasTags reports whether tags were loaded for this aggregate.
func (a SleepAggregate) HasTags() bool {
	return a.Tags != nil
}

// TagList returns the loaded tags, or nil when they were not requested.
func (a SleepAggregate) TagList() []Tag {
	if a.Tags == nil {
		return nil
	}
	return *a.Tags
}

// WithTags returns a copy of the aggregate with tags set. A nil slice is
// stored as an empty one so that "requested" stays distinguishable.
func (a SleepAggregate) WithTags(tags []Tag) SleepAggregate {
	if tags == nil {
		tags = []Tag{}
	}
	a.Tags = &tags
	return a
}
