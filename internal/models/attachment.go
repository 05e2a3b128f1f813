package models

import "encoding/json"

// AttachmentKind is the upstream type tag of a post attachment.
type AttachmentKind string

// Known attachment kinds. Anything else is preserved in Kind with a nil
// payload and skipped by the renderer.
const (
	AttachmentApp         AttachmentKind = "app"
	AttachmentGraffiti    AttachmentKind = "graffiti"
	AttachmentLink        AttachmentKind = "link"
	AttachmentPhoto       AttachmentKind = "photo"
	AttachmentPostedPhoto AttachmentKind = "posted_photo"
	AttachmentVideo       AttachmentKind = "video"
	AttachmentAudio       AttachmentKind = "audio"
	AttachmentDoc         AttachmentKind = "doc"
	AttachmentNote        AttachmentKind = "note"
	AttachmentPage        AttachmentKind = "page"
	AttachmentPoll        AttachmentKind = "poll"
)

// Attachment is a tagged union over the attachment variants the wall API
// returns. Exactly one payload field matching Kind is non-nil for
// recognized kinds.
type Attachment struct {
	Kind AttachmentKind

	App      *AppAttachment
	Graffiti *GraffitiAttachment
	Link     *LinkAttachment
	Photo    *PhotoAttachment
	Video    *VideoAttachment
	Audio    *AudioAttachment
	Doc      *TitledAttachment
	Note     *TitledAttachment
	Page     *TitledAttachment
	Poll     *PollAttachment
}

// AppAttachment is an application screenshot posted on the wall.
type AppAttachment struct {
	AppID int64  `json:"app_id"`
	Src   string `json:"src"`
}

// GraffitiAttachment is a drawing posted on the wall.
type GraffitiAttachment struct {
	GID int64  `json:"gid"`
	Src string `json:"src"`
}

// LinkAttachment is an external link with optional preview image.
type LinkAttachment struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageSrc    string `json:"image_src"`
}

// PhotoAttachment is a photo. App-generated photos may carry zero IDs.
type PhotoAttachment struct {
	PID     int64  `json:"pid"`
	ID      int64  `json:"id"`
	OwnerID int64  `json:"owner_id"`
	Src     string `json:"src"`
	SrcBig  string `json:"src_big"`
}

// PhotoID returns the photo identifier, preferring the pid field over id.
func (p *PhotoAttachment) PhotoID() int64 {
	if p.PID != 0 {
		return p.PID
	}
	return p.ID
}

// VideoAttachment is a video with a preview thumbnail.
type VideoAttachment struct {
	OwnerID  int64  `json:"owner_id"`
	VID      int64  `json:"vid"`
	Title    string `json:"title"`
	Duration int64  `json:"duration"`
	Image    string `json:"image"`
}

// AudioAttachment is an audio record.
type AudioAttachment struct {
	Performer string `json:"performer"`
	Title     string `json:"title"`
	Duration  int64  `json:"duration"`
}

// TitledAttachment covers documents, notes and wiki pages, which only
// contribute their title to the rendered output.
type TitledAttachment struct {
	Title string `json:"title"`
}

// PollAttachment is a poll.
type PollAttachment struct {
	Question string `json:"question"`
}

// UnmarshalJSON decodes the upstream attachment object, which carries a
// "type" tag and the payload under a key of the same name.
func (a *Attachment) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var kind string
	if err := json.Unmarshal(raw["type"], &kind); err != nil {
		return err
	}
	a.Kind = AttachmentKind(kind)

	payload, ok := raw[kind]
	if !ok {
		return nil
	}

	switch a.Kind {
	case AttachmentApp:
		a.App = &AppAttachment{}
		return json.Unmarshal(payload, a.App)
	case AttachmentGraffiti:
		a.Graffiti = &GraffitiAttachment{}
		return json.Unmarshal(payload, a.Graffiti)
	case AttachmentLink:
		a.Link = &LinkAttachment{}
		return json.Unmarshal(payload, a.Link)
	case AttachmentPhoto, AttachmentPostedPhoto:
		a.Photo = &PhotoAttachment{}
		return json.Unmarshal(payload, a.Photo)
	case AttachmentVideo:
		a.Video = &VideoAttachment{}
		return json.Unmarshal(payload, a.Video)
	case AttachmentAudio:
		a.Audio = &AudioAttachment{}
		return json.Unmarshal(payload, a.Audio)
	case AttachmentDoc:
		a.Doc = &TitledAttachment{}
		return json.Unmarshal(payload, a.Doc)
	case AttachmentNote:
		a.Note = &TitledAttachment{}
		return json.Unmarshal(payload, a.Note)
	case AttachmentPage:
		a.Page = &TitledAttachment{}
		return json.Unmarshal(payload, a.Page)
	case AttachmentPoll:
		a.Poll = &PollAttachment{}
		return json.Unmarshal(payload, a.Poll)
	}

	// Unrecognized kind: keep the tag, drop the payload.
	return nil
}

// IsPhoto reports whether the attachment is a photo variant.
func (a *Attachment) IsPhoto() bool {
	return a.Kind == AttachmentPhoto || a.Kind == AttachmentPostedPhoto
}

// Title returns the attachment payload's title and whether the variant
// carries one at all.
func (a *Attachment) Title() (string, bool) {
	switch {
	case a.Link != nil:
		return a.Link.Title, true
	case a.Video != nil:
		return a.Video.Title, true
	case a.Audio != nil:
		return a.Audio.Title, true
	case a.Doc != nil:
		return a.Doc.Title, true
	case a.Note != nil:
		return a.Note.Title, true
	case a.Page != nil:
		return a.Page.Title, true
	}
	return "", false
}
