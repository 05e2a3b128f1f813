// Package feed serializes rendered walls into RSS 2.0 documents.
package feed

import (
	"encoding/xml"
	"time"

	"github.com/vkfeed/vkfeed/internal/models"
)

// RSS is the root element of an RSS feed.
type RSS struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel Channel  `xml:"channel"`
}

// Channel represents the channel element in an RSS feed.
type Channel struct {
	XMLName       xml.Name `xml:"channel"`
	Title         string   `xml:"title"`
	Link          string   `xml:"link"`
	Description   string   `xml:"description"`
	Language      string   `xml:"language,omitempty"`
	LastBuildDate string   `xml:"lastBuildDate,omitempty"` // RFC1123Z format
	Image         *Image   `xml:"image,omitempty"`
	Items         []Item   `xml:"item"`
}

// Image represents the optional channel image.
type Image struct {
	XMLName xml.Name `xml:"image"`
	URL     string   `xml:"url"`
	Title   string   `xml:"title"`
	Link    string   `xml:"link"`
}

// Item represents an item element in an RSS feed.
type Item struct {
	XMLName     xml.Name `xml:"item"`
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description,omitempty"`
	PubDate     string   `xml:"pubDate,omitempty"` // RFC1123Z format
	GUID        string   `xml:"guid,omitempty"`
}

// Render serializes a rendered wall into an RSS 2.0 document.
func Render(wall *models.Wall) ([]byte, error) {
	channel := Channel{
		Title:       wall.Name,
		Link:        wall.URL,
		Description: wall.Name,
	}

	if wall.Photo != "" {
		channel.Image = &Image{
			URL:   wall.Photo,
			Title: wall.Name,
			Link:  wall.URL,
		}
	}

	var newest time.Time
	for _, item := range wall.Items {
		channel.Items = append(channel.Items, Item{
			Title:       item.Title,
			Link:        item.URL,
			Description: item.Text,
			PubDate:     item.Date.Format(time.RFC1123Z),
			GUID:        item.URL,
		})
		if item.Date.After(newest) {
			newest = item.Date
		}
	}

	if !newest.IsZero() {
		channel.LastBuildDate = newest.Format(time.RFC1123Z)
	}

	doc := RSS{Version: "2.0", Channel: channel}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), body...), nil
}
