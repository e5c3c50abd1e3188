package models

import "fmt"

// InstagramLinkPrefix is the only accepted form of a post link.
const InstagramLinkPrefix = "https://www.instagram.com/"

type InstagramContent struct {
	Link    string `json:"link"`
	Caption string `json:"caption"`
}

func DefaultContent() InstagramContent {
	return InstagramContent{}
}

type ContentField string

const (
	ContentLink    ContentField = "link"
	ContentCaption ContentField = "caption"
)

var ContentFields = []ContentField{ContentLink, ContentCaption}

func (c *InstagramContent) Set(field ContentField, value string) error {
	switch field {
	case ContentLink:
		c.Link = value
	case ContentCaption:
		c.Caption = value
	default:
		return fmt.Errorf("%w: content.%s", ErrUnknownField, field)
	}
	return nil
}

func (c InstagramContent) Get(field ContentField) string {
	switch field {
	case ContentLink:
		return c.Link
	case ContentCaption:
		return c.Caption
	}
	return ""
}

// AnalysisRequest is everything a Requester needs for one round trip.
type AnalysisRequest struct {
	Audience TargetAudience   `json:"audience"`
	Content  InstagramContent `json:"content"`
}
