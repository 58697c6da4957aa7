package sqlite

import "time"

// Row types mirror the catalog schema. They never leave this package;
// hydration converts them into domain objects at startup and the mutating
// repository calls convert back on the way in.

type userRow struct {
	ID       uint   `gorm:"primaryKey"`
	UserName string `gorm:"uniqueIndex;size:255"`
	Password string `gorm:"size:255"`
}

func (userRow) TableName() string { return "users" }

type publisherRow struct {
	Name string `gorm:"primaryKey;size:255"`
}

func (publisherRow) TableName() string { return "publishers" }

type authorRow struct {
	ID       int    `gorm:"primaryKey;autoIncrement:false"`
	FullName string `gorm:"size:255"`
}

func (authorRow) TableName() string { return "authors" }

type bookRow struct {
	ID            int     `gorm:"primaryKey;autoIncrement:false"`
	Title         string  `gorm:"size:512"`
	Description   string  `gorm:"type:text"`
	PublisherName *string `gorm:"size:255;index"`
	ReleaseYear   *int
	Ebook         *bool
	NumPages      *int
	ImageURL      *string `gorm:"size:2048"`
}

func (bookRow) TableName() string { return "books" }

type bookAuthorRow struct {
	ID       uint `gorm:"primaryKey"`
	BookID   int  `gorm:"index"`
	AuthorID int  `gorm:"index"`
}

func (bookAuthorRow) TableName() string { return "book_authors" }

type favouriteRow struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"index"`
	BookID int  `gorm:"index"`
}

func (favouriteRow) TableName() string { return "user_favourites" }

type reviewRow struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	BookID    int    `gorm:"index"`
	Text      string `gorm:"type:text"`
	Rating    int
	Timestamp time.Time
}

func (reviewRow) TableName() string { return "reviews" }
