package domain

const (
	DocumentPrivacy = "privacy"
	DocumentOffer   = "offer"
)

// DocumentSection is addressed by its index in the tree; paragraphs by
// their index in Content.
type DocumentSection struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

type DocumentTree struct {
	Sections []DocumentSection `json:"sections"`
}

type Documents struct {
	Privacy DocumentTree `json:"privacy"`
	Offer   DocumentTree `json:"offer"`
}

// Tree returns the named document, or false for an unknown name.
func (d *Documents) Tree(name string) (DocumentTree, bool) {
	switch name {
	case DocumentPrivacy:
		return d.Privacy, true
	case DocumentOffer:
		return d.Offer, true
	default:
		return DocumentTree{}, false
	}
}

func DefaultDocuments() *Documents {
	return &Documents{
		Privacy: DocumentTree{Sections: []DocumentSection{}},
		Offer:   DocumentTree{Sections: []DocumentSection{}},
	}
}
