package model

type Tag struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type TagListResponse struct {
	Tags []string `json:"tags"`
}
