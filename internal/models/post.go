package models

import "encoding/json"

// Post is one wall entry as returned by wall.get.
type Post struct {
	ID     int64  `json:"id"`
	FromID int64  `json:"from_id"`
	Date   int64  `json:"date"`
	Text   string `json:"text"`

	// Attachment is the primary attachment; its title is compared with
	// the post text to suppress duplicate captions.
	Attachment  *Attachment  `json:"attachment"`
	Attachments []Attachment `json:"attachments"`

	CopyOwnerID *int64 `json:"copy_owner_id"`
	CopyPostID  *int64 `json:"copy_post_id"`
	CopyText    string `json:"copy_text"`

	ReplyOwnerID *int64 `json:"reply_owner_id"`
	ReplyPostID  *int64 `json:"reply_post_id"`
}

// IsRepost reports whether the post is a copy of another actor's post.
func (p *Post) IsRepost() bool {
	return p.CopyOwnerID != nil && p.CopyPostID != nil
}

// IsReply reports whether the post answers another post.
func (p *Post) IsReply() bool {
	return p.ReplyOwnerID != nil && p.ReplyPostID != nil
}

// PhotoCount returns the number of photo-type attachments.
func (p *Post) PhotoCount() int {
	count := 0
	for i := range p.Attachments {
		if p.Attachments[i].IsPhoto() {
			count++
		}
	}
	return count
}

// Profile is a user record from the extended wall response.
type Profile struct {
	UID       int64  `json:"uid"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Photo     string `json:"photo"`
}

// Group is a group record from the extended wall response.
type Group struct {
	GID   int64  `json:"gid"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

// WallPage is one page of wall.get with extended=1. The upstream wall
// array starts with the total post count, followed by the posts.
type WallPage struct {
	Count    int
	Posts    []Post
	Profiles []Profile
	Groups   []Group
}

// UnmarshalJSON decodes the heterogeneous wall array.
func (w *WallPage) UnmarshalJSON(data []byte) error {
	var raw struct {
		Wall     []json.RawMessage `json:"wall"`
		Profiles []Profile         `json:"profiles"`
		Groups   []Group           `json:"groups"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	w.Profiles = raw.Profiles
	w.Groups = raw.Groups

	if len(raw.Wall) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw.Wall[0], &w.Count); err != nil {
		return err
	}

	w.Posts = make([]Post, 0, len(raw.Wall)-1)
	for _, entry := range raw.Wall[1:] {
		var post Post
		if err := json.Unmarshal(entry, &post); err != nil {
			return err
		}
		w.Posts = append(w.Posts, post)
	}

	return nil
}

// Actors builds the ID to Actor map covering every user and group
// referenced by the page. Groups are stored under their negated ID.
func (w *WallPage) Actors() map[int64]Actor {
	actors := make(map[int64]Actor, len(w.Profiles)+len(w.Groups))
	for _, p := range w.Profiles {
		actors[p.UID] = Actor{
			ID:    p.UID,
			Name:  p.FirstName + " " + p.LastName,
			Photo: p.Photo,
		}
	}
	for _, g := range w.Groups {
		actors[-g.GID] = Actor{
			ID:    -g.GID,
			Name:  g.Name,
			Photo: g.Photo,
		}
	}
	return actors
}
