package models

import "time"

type Profile struct {
	ID        int64
	UserID    int64
	Firstname string
	Lastname  string
	About     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Project struct {
	ID          int64
	UserID      int64
	Name        string
	ImageURL    string
	URL         string
	Description string
	Hashtag     string
	IsPublished bool
	IsOpen      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProjectImage struct {
	ID        int64
	ProjectID int64
	Name      string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Skill struct {
	ID          int64
	UserID      int64
	Name        string
	ImageURL    string
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Service struct {
	ID          int64
	UserID      int64
	Name        string
	ImageURL    string
	Description string
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type SocialAccount struct {
	ID          int64
	UserID      int64
	Name        string
	URL         string
	ImageURL    string
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
