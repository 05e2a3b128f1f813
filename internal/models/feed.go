package models

import "time"

// FeedItem is one rendered wall post ready for syndication.
type FeedItem struct {
	Title string
	URL   string
	Text  string
	Date  time.Time
}

// Wall is the rendered result of reading a profile's wall.
type Wall struct {
	URL   string
	Name  string
	Photo string
	Items []FeedItem
}
